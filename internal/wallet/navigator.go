package wallet

import "github.com/vericred/vericred-desk/internal/logger"

// LogNavigator implements [Navigator] for a terminal client: it surfaces the
// target URL through the log so the user can open it on their phone.
type LogNavigator struct {
	logger *logger.Logger
}

func NewLogNavigator(logger *logger.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

func (n *LogNavigator) Navigate(url string) error {
	n.logger.Info().Str("url", url).Msg("open this link to continue in the wallet app")
	return nil
}

var _ Navigator = (*LogNavigator)(nil)
