package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatKey(t *testing.T) {
	// Both orderings resolve to the same conversation.
	assert.Equal(t, ChatKey("alice", "bob"), ChatKey("bob", "alice"))
	assert.Equal(t, "alice_bob", ChatKey("bob", "alice"))
	assert.NotEqual(t, ChatKey("alice", "bob"), ChatKey("alice", "carol"))
}

func TestProposalByID(t *testing.T) {
	svc := Service{Proposals: []Proposal{
		{ID: "a", ProviderID: "p1"},
		{ID: "b", ProviderID: "p2"},
	}}

	found := svc.ProposalByID("b")
	assert.NotNil(t, found)
	assert.Equal(t, "p2", found.ProviderID)
	assert.Nil(t, svc.ProposalByID("missing"))
}

func TestPublicViewStripsCredentials(t *testing.T) {
	prov := Provider{
		ID:           "prov-1",
		Name:         "Maria",
		Password:     "segredo",
		PasswordHash: "hash",
		TokenHash:    "token",
	}
	safe := prov.PublicView()
	assert.Empty(t, safe.Password)
	assert.Empty(t, safe.PasswordHash)
	assert.Empty(t, safe.TokenHash)
	assert.Equal(t, "Maria", safe.Name)
}
