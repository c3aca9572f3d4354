package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection is a map-backed stand-in for *mongo.Collection. It keeps
// documents in insertion order and understands field-equality filters plus
// $or, which is all the tests here query with.
type fakeCollection struct {
	docs []Document

	// when set, InsertOne reports success without an inserted ID
	dropInsertedID bool
}

func (f *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if f.dropInsertedID {
		return &mongo.InsertOneResult{}, nil
	}
	stored := copyDocument(document.(Document))
	stored["_id"] = primitive.NewObjectID()
	f.docs = append(f.docs, stored)
	return &mongo.InsertOneResult{InsertedID: stored["_id"]}, nil
}

func (f *fakeCollection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	ids := make([]interface{}, 0, len(documents))
	for _, document := range documents {
		stored := copyDocument(document.(Document))
		stored["_id"] = primitive.NewObjectID()
		f.docs = append(f.docs, stored)
		ids = append(ids, stored["_id"])
	}
	return &mongo.InsertManyResult{InsertedIDs: ids}, nil
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	matched := []interface{}{}
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			matched = append(matched, doc)
		}
	}
	return mongo.NewCursorFromDocuments(matched, nil, nil)
}

func (f *fakeCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	set := update.(bson.M)["$set"].(Document)
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			for k, v := range set {
				doc[k] = v
			}
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) FindOneAndDelete(ctx context.Context, filter interface{}, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult {
	for i, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return mongo.NewSingleResultFromDocument(doc, nil, nil)
		}
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (f *fakeCollection) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	set := update.(bson.M)["$set"].(Document)
	var matched int64
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			for k, v := range set {
				doc[k] = v
			}
			matched++
		}
	}
	return &mongo.UpdateResult{MatchedCount: matched, ModifiedCount: matched}, nil
}

func (f *fakeCollection) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	remaining := f.docs[:0]
	var deleted int64
	for _, doc := range f.docs {
		if matchFilter(doc, filter.(Document)) {
			deleted++
			continue
		}
		remaining = append(remaining, doc)
	}
	f.docs = remaining
	return &mongo.DeleteResult{DeletedCount: deleted}, nil
}

func matchFilter(doc Document, filter Document) bool {
	for key, want := range filter {
		if key == "$or" {
			anyMatched := false
			for _, clause := range want.([]Document) {
				if matchFilter(doc, clause) {
					anyMatched = true
					break
				}
			}
			if !anyMatched {
				return false
			}
			continue
		}
		if doc[key] != want {
			return false
		}
	}
	return true
}
