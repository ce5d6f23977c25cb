package types

import "github.com/m-mizutani/goerr/v2"

// CheckInMood represents how a member feels at the start of the day
type CheckInMood string

const (
	CheckInMoodEnergized CheckInMood = "energized"
	CheckInMoodNeutral   CheckInMood = "neutral"
	CheckInMoodStressed  CheckInMood = "stressed"
	CheckInMoodTired     CheckInMood = "tired"
)

// AllCheckInMoods returns all valid check-in moods
func AllCheckInMoods() []CheckInMood {
	return []CheckInMood{
		CheckInMoodEnergized,
		CheckInMoodNeutral,
		CheckInMoodStressed,
		CheckInMoodTired,
	}
}

// IsValid checks if the check-in mood is valid
func (m CheckInMood) IsValid() bool {
	switch m {
	case CheckInMoodEnergized,
		CheckInMoodNeutral,
		CheckInMoodStressed,
		CheckInMoodTired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the check-in mood
func (m CheckInMood) String() string {
	return string(m)
}

// ParseCheckInMood parses a string into a CheckInMood
func ParseCheckInMood(s string) (CheckInMood, error) {
	mood := CheckInMood(s)
	if !mood.IsValid() {
		return "", goerr.New("invalid check-in mood", goerr.V("mood", s))
	}
	return mood, nil
}

// CheckOutMood represents how a member feels at the end of the day
type CheckOutMood string

const (
	CheckOutMoodHappy    CheckOutMood = "happy"
	CheckOutMoodNeutral  CheckOutMood = "neutral"
	CheckOutMoodStressed CheckOutMood = "stressed"
	CheckOutMoodTired    CheckOutMood = "tired"
)

// AllCheckOutMoods returns all valid check-out moods
func AllCheckOutMoods() []CheckOutMood {
	return []CheckOutMood{
		CheckOutMoodHappy,
		CheckOutMoodNeutral,
		CheckOutMoodStressed,
		CheckOutMoodTired,
	}
}

// IsValid checks if the check-out mood is valid
func (m CheckOutMood) IsValid() bool {
	switch m {
	case CheckOutMoodHappy,
		CheckOutMoodNeutral,
		CheckOutMoodStressed,
		CheckOutMoodTired:
		return true
	default:
		return false
	}
}

// String returns the string representation of the check-out mood
func (m CheckOutMood) String() string {
	return string(m)
}

// ParseCheckOutMood parses a string into a CheckOutMood
func ParseCheckOutMood(s string) (CheckOutMood, error) {
	mood := CheckOutMood(s)
	if !mood.IsValid() {
		return "", goerr.New("invalid check-out mood", goerr.V("mood", s))
	}
	return mood, nil
}
