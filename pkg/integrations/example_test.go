package integrations_test

import (
	"fmt"

	"github.com/matzehuels/depgraph/pkg/integrations"
)

func ExampleBaseURL() {
	fmt.Println(integrations.BaseURL("https://mirror.example.com/api/v1/ ", "https://crates.io/api/v1"))
	fmt.Println(integrations.BaseURL("", "https://crates.io/api/v1"))
	// Output:
	// https://mirror.example.com/api/v1
	// https://crates.io/api/v1
}

func ExamplePathEscape() {
	fmt.Println(integrations.PathEscape("serde"))
	fmt.Println(integrations.PathEscape("a/b c"))
	// Output:
	// serde
	// a%2Fb%20c
}
