package main

import (
	"fmt"

	"github.com/wasmfoundry/hostlink/internal/marker"
	"github.com/wasmfoundry/hostlink/pkg/descriptor"
)

func main() {
	// Test first-colon payload splitting
	tests := []string{
		"hostlink::func:allocBuffer",
		"hostlink::method:js:console.log",
		"hostlink::constructor",
		"hostlink::class:Widget",
	}

	fmt.Println("Testing marker decoding:")
	for _, test := range tests {
		m, ok, err := marker.Decode(test)
		if err != nil {
			fmt.Printf("%-35s -> decode error: %v\n", test, err)
			continue
		}
		if !ok {
			fmt.Printf("%-35s -> not a marker\n", test)
			continue
		}
		fmt.Printf("%-35s -> kind=%q payload=%q\n", test, m.Kind, m.Payload)
	}
	fmt.Println()

	// Test markers that must be rejected
	fmt.Println("Testing malformed markers:")
	invalidTests := []string{
		"hostlink::",       // Empty kind
		"hostlink::method", // Member kind without import name
	}

	for _, test := range invalidTests {
		m, ok, err := marker.Decode(test)
		if err == nil && ok {
			_, err = marker.MemberDirective(m, "Widget")
		}
		if err != nil {
			fmt.Printf("%-35s -> ✓ Correctly rejected: %v\n", test, err)
		} else {
			fmt.Printf("%-35s -> ✗ Should have been rejected\n", test)
		}
	}
	fmt.Println()

	// Test descriptor line formatting
	d := descriptor.Descriptor{
		Kind:   "method",
		Class:  "Widget",
		Symbol: "example.com/demo/widgets.(*Widget).DoIt",
		Import: "doIt",
		Params: []string{"int32", "float64"},
		Return: "void",
	}
	fmt.Println("Sample descriptor line:")
	fmt.Println(d.String())
}
