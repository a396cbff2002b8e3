package track

// Sport is the closed sport vocabulary of the intermediate track format.
// The wire format allows many more sport names than the intermediate
// document does, so everything outside the table maps to SportOther; an
// unknown sport never fails a conversion.
type Sport int

const (
	SportOther Sport = iota
	SportRunning
	SportBiking
)

// SportFromFIT maps a decoder sport name onto the closed vocabulary.
func SportFromFIT(name string) Sport {
	switch name {
	case "running":
		return SportRunning
	case "cycling":
		return SportBiking
	default:
		return SportOther
	}
}

// String returns the name used in the intermediate document's Sport attribute.
func (s Sport) String() string {
	switch s {
	case SportRunning:
		return "Running"
	case SportBiking:
		return "Biking"
	default:
		return "Other"
	}
}
