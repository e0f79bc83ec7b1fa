package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, searchFilter(""))
}

func TestSearchFilter_MatchesNameAndEmail(t *testing.T) {
	filter := searchFilter("john")

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	re := primitive.Regex{Pattern: "john", Options: "i"}
	assert.Equal(t, bson.M{"fullname": re}, or[0])
	assert.Equal(t, bson.M{"email": re}, or[1])
}

func TestUpdateDoc_OnlySuppliedFields(t *testing.T) {
	now := time.Now()
	phone := "0123456789"

	doc := updateDoc(UpdateFields{Phone: &phone}, now)

	set, ok := doc["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, bson.M{"updatedAt": now, "phone": phone}, set)
}

func TestUpdateDoc_AllFields(t *testing.T) {
	now := time.Now()
	name, email, phone, role := "Jane Doe", "jane@x.com", "", "admin"

	doc := updateDoc(UpdateFields{
		FullName: &name,
		Email:    &email,
		Phone:    &phone,
		Role:     &role,
	}, now)

	set := doc["$set"].(bson.M)
	assert.Equal(t, bson.M{
		"updatedAt": now,
		"fullname":  name,
		"email":     email,
		"phone":     phone,
		"role":      role,
	}, set)
}

func TestUpdateDoc_NoFieldsStillTouchesUpdatedAt(t *testing.T) {
	now := time.Now()

	doc := updateDoc(UpdateFields{}, now)

	assert.Equal(t, bson.M{"$set": bson.M{"updatedAt": now}}, doc)
}
