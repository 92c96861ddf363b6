package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/supatodo/todolist-api/internal/core/domain"
	"github.com/supatodo/todolist-api/internal/core/ports"
)

const collectionTodos = "todolist"

const sequenceTodos = "todolist"

type TodoRepository struct {
	col *mongo.Collection
	seq *SequenceAllocator
}

func NewTodoRepository(db *mongo.Database, seq *SequenceAllocator) *TodoRepository {
	return &TodoRepository{col: db.Collection(collectionTodos), seq: seq}
}

type todoDoc struct {
	ID        int64     `bson:"_id"`
	Note      string    `bson:"note"`
	Status    string    `bson:"status"`
	Order     int64     `bson:"order"`
	OwnerID   int64     `bson:"user_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d todoDoc) toDomain() domain.Todo {
	return domain.Todo{
		ID:        d.ID,
		Note:      d.Note,
		Status:    domain.TodoStatus(d.Status),
		Order:     d.Order,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *TodoRepository) Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, sequenceTodos)
	if err != nil {
		return nil, err
	}

	doc := todoDoc{
		ID:        id,
		Note:      todo.Note,
		Status:    string(todo.Status),
		Order:     todo.Order,
		OwnerID:   todo.OwnerID,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	created := doc.toDomain()
	return &created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo %d: %w", id, err)
	}
	todo := doc.toDomain()
	return &todo, nil
}

// List returns todos matching the filter, ascending by order with id as
// the tie-breaker.
func (r *TodoRepository) List(ctx context.Context, filter ports.TodoFilter) ([]domain.Todo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != nil {
		query["user_id"] = *filter.OwnerID
	}
	if filter.Status != nil {
		query["status"] = string(*filter.Status)
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer cur.Close(ctx)

	todos := []domain.Todo{}
	for cur.Next(ctx) {
		var doc todoDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode todo: %w", err)
		}
		todos = append(todos, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// MaxOrder returns the highest order value across the whole collection, or
// 0 when empty.
func (r *TodoRepository) MaxOrder(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDoc
	err := r.col.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{
		{Key: "order", Value: -1},
	})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("max order: %w", err)
	}
	return doc.Order, nil
}

func (r *TodoRepository) Update(ctx context.Context, id int64, patch ports.TodoPatch) (*domain.Todo, error) {
	set := bson.M{}
	if patch.Note != nil {
		set["note"] = *patch.Note
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Order != nil {
		set["order"] = *patch.Order
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc todoDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo %d: %w", id, err)
	}
	todo := doc.toDomain()
	return &todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

// DeleteByOwner removes every todo owned by ownerID and reports how many
// documents were removed. Used by the account-deletion cascade.
func (r *TodoRepository) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("delete todos for user %d: %w", ownerID, err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes backing owner filtering and rank
// sorting.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "order", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
