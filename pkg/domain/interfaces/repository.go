package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Attendance() AttendanceRepository
	Submission() SubmissionRepository
	Member() MemberRepository

	Close() error
}
