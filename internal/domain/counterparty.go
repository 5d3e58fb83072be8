package domain

import "strings"

// ExternalAccountPrefix marks counterparty identifiers that are not owned by
// any user known to this system. Transfers toward such identifiers affect
// only the internal side's balance.
const ExternalAccountPrefix = "ext-"

// Counterparty is the tagged form of a receiver identifier: either an
// internal account reference (by id or IBAN, resolved later) or an external
// token. Parsing once at the boundary keeps prefix sniffing out of the core.
type Counterparty struct {
	ref      string
	external bool
}

// ParseCounterparty classifies a raw receiver identifier.
func ParseCounterparty(raw string) Counterparty {
	return Counterparty{
		ref:      raw,
		external: strings.HasPrefix(raw, ExternalAccountPrefix),
	}
}

// External reports whether the counterparty lives outside this system.
func (c Counterparty) External() bool { return c.external }

// Ref returns the raw identifier: an internal account id or IBAN for
// internal counterparties, the full sentinel token for external ones.
func (c Counterparty) Ref() string { return c.ref }
