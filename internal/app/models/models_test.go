package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleStudent.Valid())
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleDashboardPath(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want string
	}{
		{name: "admin goes to admin dashboard", role: RoleAdmin, want: "/admin"},
		{name: "teacher goes to teacher dashboard", role: RoleTeacher, want: "/teacher"},
		{name: "student stays on landing page", role: RoleStudent, want: "/"},
		{name: "unknown role falls back to landing page", role: Role("other"), want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.DashboardPath())
		})
	}
}

func TestMaterialTypeValid(t *testing.T) {
	for _, mt := range []MaterialType{MaterialVideo, MaterialDocument, MaterialExam, MaterialQuiz, MaterialSummary} {
		assert.True(t, mt.Valid(), string(mt))
	}
	assert.False(t, MaterialType("podcast").Valid())
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{name: "standard price", price: 100, want: 70},
		{name: "rounds to nearest unit", price: 99, want: 69}, // 69.3
		{name: "rounds up", price: 95, want: 67},              // 66.5
		{name: "free stays free", price: 0, want: 0},
		{name: "negative treated as free", price: -10, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountedPrice(tt.price))
		})
	}
}

func TestSubjectFree(t *testing.T) {
	assert.True(t, (&Subject{Price: 0}).Free())
	assert.False(t, (&Subject{Price: 49.90}).Free())
}
