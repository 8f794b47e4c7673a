package sqlite

import "time"

// SetTxTimeouts overrides the transaction bounds so tests can trip them
// without waiting out the production defaults.
func (s *Store) SetTxTimeouts(wait, exec time.Duration) {
	s.txWait = wait
	s.txExec = exec
}
