package repository

import (
	"Showcase/entity"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setSessionField upserts one field of a visitor session.
func (m *MongoDB) setSessionField(ctx context.Context, id, field string, value interface{}) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{"_id", id}}
	update := bson.D{{"$set", bson.D{
		{field, value},
		{"updated_at", time.Now()},
	}}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoDB) SetSessionLanguage(ctx context.Context, id string, lang entity.Language) error {
	return m.setSessionField(ctx, id, "lang", lang)
}

func (m *MongoDB) SetSessionCarousel(ctx context.Context, id, productKey string, index int) error {
	return m.setSessionField(ctx, id, "carousel."+entity.CarouselKey(productKey), index)
}

// MarkSessionWelcomed sets the welcome flag only when it is not set yet and
// reports whether this call set it. When the flag is already true the
// filter misses and the upsert collides with the existing _id.
func (m *MongoDB) MarkSessionWelcomed(ctx context.Context, id, productKey string) (bool, error) {
	connection, err := m.connect()
	if err != nil {
		return false, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	field := "welcomed." + entity.WelcomeKey(productKey)
	filter := bson.D{
		{"_id", id},
		{field, bson.D{{"$ne", true}}},
	}
	update := bson.D{{"$set", bson.D{
		{field, true},
		{"updated_at", time.Now()},
	}}}
	opts := options.Update().SetUpsert(true)

	result, err := collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return result.ModifiedCount > 0 || result.UpsertedCount > 0, nil
}

// LoadSession returns nil without error when the session is unknown.
func (m *MongoDB) LoadSession(ctx context.Context, id string) (*entity.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	var session entity.Session
	err = collection.FindOne(ctx, bson.D{{"_id", id}}).Decode(&session)
	if err != nil {
		return nil, m.findError(err)
	}
	return &session, nil
}
