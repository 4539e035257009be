package domain

// ConsultationStatistics aggregates a psychologist's (or the whole platform's)
// consultation history.
type ConsultationStatistics struct {
	Total         int
	ByStatus      map[ConsultationStatus]int
	RatedCount    int
	AverageRating float64
}

// CompletionRate returns the share of completed consultations as a percentage.
func (s *ConsultationStatistics) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ByStatus[StatusCompleted]) / float64(s.Total) * 100
}
