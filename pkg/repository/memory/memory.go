package memory

import (
	"github.com/arpit-maurya-P41/test-web-check-in-sub000/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	attendance *attendanceRepository
	submission *submissionRepository
	member     *memberRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		attendance: newAttendanceRepository(),
		submission: newSubmissionRepository(),
		member:     newMemberRepository(),
	}
}

func (m *Memory) Attendance() interfaces.AttendanceRepository {
	return m.attendance
}

func (m *Memory) Submission() interfaces.SubmissionRepository {
	return m.submission
}

func (m *Memory) Member() interfaces.MemberRepository {
	return m.member
}

func (m *Memory) Close() error {
	return nil
}
