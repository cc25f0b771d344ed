package prompt

// Reporter shows progress messages to the operator.
type Reporter interface {
	Printf(format string, a ...interface{})
	Warnf(format string, a ...interface{})
	Successf(format string, a ...interface{})
	Section(title string)
}

// Silent is a Reporter that drops every message.
var Silent Reporter = silent{}

type silent struct{}

func (silent) Printf(string, ...interface{})   {}
func (silent) Warnf(string, ...interface{})    {}
func (silent) Successf(string, ...interface{}) {}
func (silent) Section(string)                  {}

var _ Reporter = (*Console)(nil)
