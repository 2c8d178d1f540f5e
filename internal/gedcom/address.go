package gedcom

// Address is a structured address block. The ADDR line's value plus CONT
// continuations accumulate into Full; the ADR1..CTRY children fill the
// structured fields. Contact lines (PHON, EMAIL, FAX, WWW) are grammar-level
// siblings of ADDR but are routed here by the owning record, since several
// producers nest them and callers want them in one place either way.
type Address struct {
	recordBase
	Full       string
	Line1      string
	Line2      string
	Line3      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      []string
	Email      []string
	Fax        []string
	WWW        []string
}

func (a *Address) parseTag(p *parser, tok Token) {
	if tok.Level-a.baseLevel != 1 {
		p.unexpected(a, "ADDR", tok)
		return
	}
	switch tok.Tag {
	case "CONT":
		a.appendText(tok.Value, true)
	case "CONC":
		a.appendText(tok.Value, false)
	case "ADR1":
		a.Line1 = tok.Value
	case "ADR2":
		a.Line2 = tok.Value
	case "ADR3":
		a.Line3 = tok.Value
	case "CITY":
		a.City = tok.Value
	case "STAE":
		a.State = tok.Value
	case "POST":
		a.PostalCode = tok.Value
	case "CTRY":
		a.Country = tok.Value
	case "PHON":
		a.Phone = append(a.Phone, tok.Value)
	case "EMAIL":
		a.Email = append(a.Email, tok.Value)
	case "FAX":
		a.Fax = append(a.Fax, tok.Value)
	case "WWW":
		a.WWW = append(a.WWW, tok.Value)
	default:
		p.unexpected(a, "ADDR", tok)
	}
}

func (a *Address) finalize(*parser) bool {
	a.Full = a.takeText()
	return true
}

// address opens an Address sub-object for an ADDR line on behalf of any
// parent record.
func (p *parser) address(tok Token) *Address {
	a := &Address{}
	if tok.Value != "" {
		a.appendText(tok.Value, false)
	}
	p.push(a, tok.Level, tok.Level)
	return a
}

// addContact routes a contact tag at ADDR's own level into the address.
func (a *Address) addContact(tag, value string) {
	switch tag {
	case "PHON":
		a.Phone = append(a.Phone, value)
	case "EMAIL":
		a.Email = append(a.Email, value)
	case "FAX":
		a.Fax = append(a.Fax, value)
	case "WWW":
		a.WWW = append(a.WWW, value)
	}
}
