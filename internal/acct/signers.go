package acct

// SignerSet is the explicit capability parameter carried by every mutating
// request: the identities whose consent the host obtained before invoking
// the processor. The processor only ever asserts membership; obtaining
// consent is the host's job.
type SignerSet map[Address]struct{}

// Signers builds a set from the given addresses.
func Signers(addrs ...Address) SignerSet {
	s := make(SignerSet, len(addrs))
	for _, a := range addrs {
		s[a] = struct{}{}
	}
	return s
}

// Signed reports whether addr consented to the request.
func (s SignerSet) Signed(addr Address) bool {
	_, ok := s[addr]
	return ok
}
