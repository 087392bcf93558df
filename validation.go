package problema

// TableAudit captures the outcome of auditing one derived table group.
type TableAudit struct {
	Table string
	Err   error
}

// Passed reports whether the audit succeeded.
func (a TableAudit) Passed() bool {
	return a.Err == nil
}

// ValidateTables audits every derived table for bijectivity: each rotor
// mapping and its inverse, the plugboard, and the S-box pair must be exact
// permutations of their domains. A failure here means the key schedule is
// broken, since derivation can only ever permute identity tables.
func (c *Cipher) ValidateTables() ([]TableAudit, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}

	audits := []TableAudit{
		{Table: "rotors", Err: c.bank.Validate()},
		{Table: "plugboard", Err: c.board.Validate()},
		{Table: "sbox", Err: c.transform.Validate()},
	}

	for _, a := range audits {
		if !a.Passed() {
			c.log.WithField("table", a.Table).WithError(a.Err).Error("table audit failed")
		}
	}

	return audits, nil
}
