package field

// NewCommandsForTest exposes the command buffer constructor to external tests.
func NewCommandsForTest() *Commands {
	return newCommands()
}
