package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devconnector/connector-api/internal/core/domain"
)

const collectionProfiles = "profiles"

// ProfileRepository stores one document per owner. Sub-collection edits are
// single $push/$pull updates filtered by owner, so concurrent edits never
// overwrite each other.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

func (r *ProfileRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOne(ctx, bson.M{"user": ownerID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("find profile", err)
	}
	return &p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, storeErr("list profiles", err)
	}
	profiles := []*domain.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, storeErr("decode profiles", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := p.Clone()
	doc.ID = newID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, storeErr("insert profile", err)
	}
	return doc, nil
}

func (r *ProfileRepository) Update(ctx context.Context, ownerID string, fields domain.ProfileFields) (*domain.Profile, error) {
	set := fieldsUpdate(fields)
	if len(set) == 0 {
		return r.FindByOwner(ctx, ownerID)
	}
	return r.findAndUpdate(ctx, bson.M{"user": ownerID}, bson.M{"$set": set})
}

func (r *ProfileRepository) DeleteByOwner(ctx context.Context, ownerID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"user": ownerID})
	if err != nil {
		return false, storeErr("delete profile", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ProfileRepository) PrependExperience(ctx context.Context, ownerID string, e domain.ExperienceEntry) (*domain.Profile, error) {
	e = e.Normalize().WithID(newID())
	return r.findAndUpdate(ctx, bson.M{"user": ownerID}, pushFront("experience", e))
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, ownerID, entryID string) (*domain.Profile, bool, error) {
	return r.pullEntry(ctx, ownerID, "experience", entryID)
}

func (r *ProfileRepository) PrependEducation(ctx context.Context, ownerID string, e domain.EducationEntry) (*domain.Profile, error) {
	e = e.Normalize().WithID(newID())
	return r.findAndUpdate(ctx, bson.M{"user": ownerID}, pushFront("education", e))
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, ownerID, entryID string) (*domain.Profile, bool, error) {
	return r.pullEntry(ctx, ownerID, "education", entryID)
}

// EnsureIndexes enforces at most one profile per owner.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// pullEntry removes one entry by id in a single update. When the filter does
// not match, the profile is re-read to tell "no such entry" from "no profile".
func (r *ProfileRepository) pullEntry(ctx context.Context, ownerID, field, entryID string) (*domain.Profile, bool, error) {
	filter := bson.M{"user": ownerID, field + "._id": entryID}
	update := bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}}

	p, err := r.findAndUpdate(ctx, filter, update)
	if err == nil {
		return p, true, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, false, err
	}

	current, err := r.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, false, err
	}
	return current, false, nil
}

func (r *ProfileRepository) findAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Profile
	if err := r.col.FindOneAndUpdate(ctx, filter, update, afterUpdate()).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, storeErr("update profile", err)
	}
	return &p, nil
}

// pushFront prepends value to an array field, keeping newest-first order.
func pushFront(field string, value any) bson.M {
	return bson.M{"$push": bson.M{field: bson.M{"$each": bson.A{value}, "$position": 0}}}
}

// fieldsUpdate builds the $set document for the non-empty profile fields.
func fieldsUpdate(f domain.ProfileFields) bson.M {
	set := bson.M{}
	put := func(key, v string) {
		if v != "" {
			set[key] = v
		}
	}
	put("company", f.Company)
	put("website", f.Website)
	put("location", f.Location)
	put("status", f.Status)
	put("bio", f.Bio)
	put("githubusername", f.GitHubUsername)
	put("social.youtube", f.Social.YouTube)
	put("social.twitter", f.Social.Twitter)
	put("social.facebook", f.Social.Facebook)
	put("social.linkedin", f.Social.LinkedIn)
	put("social.instagram", f.Social.Instagram)
	if f.Skills != nil {
		set["skills"] = f.Skills
	}
	return set
}
