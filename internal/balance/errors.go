package balance

// BalanceError is a custom error type for team generation errors
type BalanceError string

// Error implements the error interface
func (e BalanceError) Error() string {
	return string(e)
}

const (
	ErrInsufficientPlayers BalanceError = "at least 2 present players are required to generate teams"
)
