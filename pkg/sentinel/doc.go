// Package sentinel encodes "entry present" versus "no entry" as a value.
//
// Many concurrent maps reserve their zero value to mean "no mapping", which
// makes a stored nil indistinguishable from a miss. Value wraps a payload so
// that a nil payload is still a non-zero, storable value:
//
//	Encode[*User](nil)  // Present(nil): a real entry whose payload is nil
//	Absent[*User]()     // the zero Value: no entry at all
//
// A map primitive that refuses nil values can store Present(nil) freely,
// because only Absent reports IsNil.
package sentinel
