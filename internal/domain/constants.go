package domain

// Default scheduling values, overridable through config.
const (
	DefaultSlotDurationMinutes = 60
	DefaultDurationMinutes     = 60

	// All psychologists observe a single fixed offset (Peru, UTC-5).
	DefaultUTCOffsetMinutes = -5 * 60
)

// Business validation constants.
const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 120

	MinRating = 1
	MaxRating = 5

	MaxStudentNotesLength      = 1000
	MaxPsychologistNotesLength = 2000
	MaxRecommendationsLength   = 2000
	MaxFeedbackLength          = 1000
	MaxCancellationReasonLen   = 500
)

// Time format constants.
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
