// Package shopitem holds the shopping-list entry domain: the ShopItem type,
// the rules that turn raw form text into a name and a count, and the Store
// contract that persistence backends implement.
//
// # Parsing
//
// Form input is untyped text. ParseName and ParseCount never fail:
//
//	name := shopitem.ParseName("  Milk ")  // "Milk"
//	count := shopitem.ParseCount("abc")    // 0
//
// A count that cannot be parsed becomes 0, which Validate then rejects. This
// keeps "bad text" and "non-positive number" on the same path.
//
// # Validation
//
// Validate checks both fields every time so a form can flag both at once:
//
//	v := shopitem.Validate(name, count)
//	if !v.Valid() {
//	    // v.NameInvalid / v.CountInvalid
//	}
package shopitem
