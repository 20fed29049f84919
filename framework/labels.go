package framework

// Standard annotation names. Reporters understand these; any other name is
// passed through as a custom label.
const (
	LabelEpic        = "epic"
	LabelFeature     = "feature"
	LabelStory       = "story"
	LabelSeverity    = "severity"
	LabelDescription = "description"
	LabelSuite       = "suite"
)

// Label is a single piece of descriptive metadata attached to a test.
type Label struct {
	Name  string
	Value string
}

// Labels is an ordered set of annotations. A name appears at most once.
type Labels []Label

// Get returns the value for name, or "" if it was never set.
func (l Labels) Get(name string) string {
	for _, label := range l {
		if label.Name == name {
			return label.Value
		}
	}
	return ""
}

func (l Labels) with(name, value string) Labels {
	ret := make(Labels, 0, len(l)+1)
	replaced := false
	for _, label := range l {
		if label.Name == name {
			ret = append(ret, Label{Name: name, Value: value})
			replaced = true
		} else {
			ret = append(ret, label)
		}
	}
	if !replaced {
		ret = append(ret, Label{Name: name, Value: value})
	}
	return ret
}
