// Package commission resolves the commission availability badge shown on the site.
package commission

// Status is one of the three availability levels.
type Status string

const (
	Green  Status = "green"
	Yellow Status = "yellow"
	Red    Status = "red"
)

var messages = map[Status]string{
	Green:  "Commissions Open",
	Yellow: "Limited Availability",
	Red:    "Commissions Closed",
}

// Display renders the badge. Implementations map the class and message onto the page.
type Display interface {
	Render(class Status, message string)
}

// Indicator holds the status read at page load. It never changes the status
// itself; Status exposes it to other components.
type Indicator struct {
	status Status
}

// ParseStatus maps an attribute value onto a Status, falling back to Green.
func ParseStatus(attr string) Status {
	s := Status(attr)
	if _, ok := messages[s]; ok {
		return s
	}
	return Green
}

// New creates an Indicator from the raw data attribute and renders it when
// display is non-nil.
func New(attr string, display Display) *Indicator {
	ind := &Indicator{status: ParseStatus(attr)}
	if display != nil {
		display.Render(ind.status, ind.Message())
	}
	return ind
}

// Status returns the current status.
func (i *Indicator) Status() Status { return i.status }

// Message returns the text shown for the current status.
func (i *Indicator) Message() string { return messages[i.status] }
