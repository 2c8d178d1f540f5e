package gedcom

// CustomRecord preserves an unrecognized tag and its subtree. Custom nodes
// participate in stack parsing so nested vendor data is not lost, but they
// are inert to the resolver and the graph layers.
type CustomRecord struct {
	recordBase
	Tag   string
	Value string

	// discard marks nodes created only to absorb children of a skipped
	// record (e.g. a top-level record with no xref).
	discard bool
}

func (c *CustomRecord) parseTag(p *parser, tok Token) {
	switch tok.Tag {
	case "CONC":
		c.Value += tok.Value
	case "CONT":
		c.Value += "\n" + tok.Value
	default:
		p.custom(c, tok)
	}
}

func (c *CustomRecord) finalize(*parser) bool { return !c.discard }

// Children returns the nested custom nodes beneath this one.
func (c *CustomRecord) Children() []*CustomRecord { return c.custom }
