package repository

import (
	"Showcase/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveChatTurns inserts turns in order and trims the transcript of their
// session and product to the newest maxTurns.
func (m *MongoDB) SaveChatTurns(ctx context.Context, turns []entity.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatTurnsCollection)

	docs := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		docs = append(docs, turn)
	}
	_, err = collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		return fmt.Errorf("mongodb insert chat turns: %w", err)
	}

	if m.maxTurns <= 0 {
		return nil
	}
	filter := bson.D{{"session_id", turns[0].SessionID}, {"product", turns[0].Product}}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("mongodb count chat turns: %w", err)
	}
	if count <= int64(m.maxTurns) {
		return nil
	}

	// ids of everything older than the newest maxTurns
	opts := options.Find().
		SetSort(bson.D{{"created_at", -1}, {"_id", -1}}).
		SetSkip(int64(m.maxTurns)).
		SetProjection(bson.D{{"_id", 1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("mongodb find old chat turns: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []interface{}
	for cursor.Next(ctx) {
		var doc struct {
			ID interface{} `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err == nil {
			ids = append(ids, doc.ID)
		}
	}
	if len(ids) > 0 {
		_, err = collection.DeleteMany(ctx, bson.D{{"_id", bson.D{{"$in", ids}}}})
		if err != nil {
			return fmt.Errorf("mongodb trim chat turns: %w", err)
		}
	}
	return nil
}

// GetChatTurns returns the transcript oldest first.
func (m *MongoDB) GetChatTurns(ctx context.Context, sessionID, product string) ([]entity.ChatTurn, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatTurnsCollection)

	filter := bson.D{{"session_id", sessionID}, {"product", product}}
	opts := options.Find().SetSort(bson.D{{"created_at", 1}, {"_id", 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb find chat turns: %w", err)
	}
	defer cursor.Close(ctx)

	turns := make([]entity.ChatTurn, 0)
	if err = cursor.All(ctx, &turns); err != nil {
		return nil, fmt.Errorf("mongodb decode chat turns: %w", err)
	}
	return turns, nil
}

// EnsureChatTurnIndexes creates the transcript lookup index.
func (m *MongoDB) EnsureChatTurnIndexes(ctx context.Context) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(chatTurnsCollection)

	index := mongo.IndexModel{
		Keys: bson.D{
			{"session_id", 1},
			{"product", 1},
			{"created_at", -1},
		},
	}
	_, err = collection.Indexes().CreateOne(ctx, index)
	if err != nil {
		return fmt.Errorf("mongodb create chat turn index: %w", err)
	}
	return nil
}
