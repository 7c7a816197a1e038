package eval

// Confusion tallies the operational outcomes of predictions on a test
// split. Counts are float64 so the same type carries averaged and
// budget-rescaled values.
type Confusion struct {
	// Missed counts true issues predicted as healthy — the expensive case.
	Missed float64
	// FalseAlarms counts healthy machines predicted as having an issue.
	FalseAlarms float64
	// WrongIssue counts true issues diagnosed as a different issue type.
	WrongIssue float64
	// CorrectAlarms counts issues diagnosed with the right type.
	CorrectAlarms float64
	// CorrectNormal counts healthy machines predicted healthy.
	CorrectNormal float64
}

// Record classifies one (truth, prediction) pair into its outcome bucket.
func (c *Confusion) Record(truth, pred int) {
	switch {
	case truth == 0 && pred == 0:
		c.CorrectNormal++
	case truth == 0 && pred != 0:
		c.FalseAlarms++
	case truth != 0 && pred == 0:
		c.Missed++
	case truth == pred:
		c.CorrectAlarms++
	default:
		c.WrongIssue++
	}
}

// Total returns the number of recorded outcomes.
func (c Confusion) Total() float64 {
	return c.Missed + c.FalseAlarms + c.WrongIssue + c.CorrectAlarms + c.CorrectNormal
}

// Alarms returns the number of predicted issues of any type.
func (c Confusion) Alarms() float64 {
	return c.FalseAlarms + c.WrongIssue + c.CorrectAlarms
}

// MissRate returns the fraction of true issues that were missed, in
// percent. Returns 0 when no true issues were recorded.
func (c Confusion) MissRate() float64 {
	issues := c.Missed + c.WrongIssue + c.CorrectAlarms
	if issues == 0 {
		return 0
	}
	return c.Missed / issues * 100
}

// FalseAlarmRate returns the fraction of healthy machines that raised an
// alarm, in percent. Returns 0 when no healthy machines were recorded.
func (c Confusion) FalseAlarmRate() float64 {
	healthy := c.FalseAlarms + c.CorrectNormal
	if healthy == 0 {
		return 0
	}
	return c.FalseAlarms / healthy * 100
}

// Scale returns a copy of c with every count multiplied by f.
func (c Confusion) Scale(f float64) Confusion {
	return Confusion{
		Missed:        c.Missed * f,
		FalseAlarms:   c.FalseAlarms * f,
		WrongIssue:    c.WrongIssue * f,
		CorrectAlarms: c.CorrectAlarms * f,
		CorrectNormal: c.CorrectNormal * f,
	}
}
