package ui

type UI interface {
	UpdateStatus(status string)
	UpdateCycle(cycle int)
	UpdateEarnings(total float64)
	Log(msg string)
}

type SilentUI struct{}

func (s SilentUI) UpdateStatus(status string)   {}
func (s SilentUI) UpdateCycle(cycle int)        {}
func (s SilentUI) UpdateEarnings(total float64) {}
func (s SilentUI) Log(msg string)               {}
