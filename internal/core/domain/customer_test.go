package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomer_Location(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		expected string
	}{
		{"both", Customer{City: "Lisboa", Country: "Portugal"}, "Lisboa, Portugal"},
		{"city only", Customer{City: "Porto"}, "Porto"},
		{"country only", Customer{Country: "Spain"}, "Spain"},
		{"neither", Customer{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.customer.Location())
		})
	}
}

func TestCustomer_Matches(t *testing.T) {
	c := Customer{ExternalCode: "207119551", Name: "Ana Silva", Email: "ana@example.com"}

	assert.True(t, c.Matches(""))
	assert.True(t, c.Matches("  "))
	assert.True(t, c.Matches("silva"))
	assert.True(t, c.Matches("ANA"))
	assert.True(t, c.Matches("7119"))
	assert.True(t, c.Matches("example.com"))
	assert.False(t, c.Matches("bruno"))
}

func TestActorFromContext(t *testing.T) {
	assert.Empty(t, ActorFromContext(context.Background()))

	ctx := WithActor(context.Background(), "maria")
	assert.Equal(t, "maria", ActorFromContext(ctx))
}

func TestLogEntry_MatchesModule(t *testing.T) {
	tests := []struct {
		module string
		filter string
		want   bool
	}{
		{ModuleMasterData, "", true},
		{ModuleMasterData, ModuleMasterData, true},
		{ModuleMasterData, ModuleSettings, false},
		{ModuleSettings, ModuleSettings, true},
		{ModuleUsers, ModuleSettings, true},
		{ModuleIntegrations, ModuleSettings, true},
		{ModuleIntegrations, ModuleIntegrations, true},
		{ModuleUsers, ModuleIntegrations, false},
	}

	for _, tt := range tests {
		t.Run(tt.module+"/"+tt.filter, func(t *testing.T) {
			e := LogEntry{Module: tt.module}
			assert.Equal(t, tt.want, e.MatchesModule(tt.filter))
		})
	}
}

func TestModulesFor(t *testing.T) {
	assert.Nil(t, ModulesFor(""))
	assert.Equal(t, []string{ModuleMasterData}, ModulesFor(ModuleMasterData))
	assert.ElementsMatch(t, []string{ModuleSettings, ModuleUsers, ModuleIntegrations}, ModulesFor(ModuleSettings))
}
