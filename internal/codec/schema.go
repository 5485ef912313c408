package codec

// Rule is the default shape of an element type.
type Rule struct {
	Void   bool
	Inline bool
}

// Schema maps element types to the flags a record gets when it omits them.
type Schema map[string]Rule

func (s Schema) rule(typ string) Rule {
	return s[typ]
}
