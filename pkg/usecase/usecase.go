package usecase

// UseCases bundles the use case layer for injection into controllers
type UseCases struct {
	CheckIn    *CheckInUseCase
	Roster     *RosterUseCase
	Membership *MembershipUseCase
	Metrics    *MetricsUseCase
}

// New creates a UseCases bundle
func New(checkIn *CheckInUseCase, roster *RosterUseCase, membership *MembershipUseCase, metrics *MetricsUseCase) *UseCases {
	return &UseCases{
		CheckIn:    checkIn,
		Roster:     roster,
		Membership: membership,
		Metrics:    metrics,
	}
}
