package symbols

import "golang.org/x/text/unicode/norm"

// LookupNormalized finds a binding visible from scope whose name equals name
// after NFC normalization but differs in code points, e.g. a composed "é"
// against "e" + U+0301. JavaScript compares identifiers by code points, so
// such a pair never resolves.
func (res *Result) LookupNormalized(scope ScopeID, name string) (BindingID, bool) {
	want := norm.NFC.String(name)
	for s := res.Scopes.Get(scope); s != nil; s = res.Scopes.Get(s.Parent) {
		for _, id := range s.Bindings {
			got := res.BindingName(id)
			if got != name && norm.NFC.String(got) == want {
				return id, true
			}
		}
	}
	return NoBindingID, false
}
