package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/models"
)

// collectionProvider hands out the users collection and is told about
// failed operations so it can recover the connection.
type collectionProvider interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
	Invalidate(err error)
}

// userDocument is the stored shape of an account. Field names match the
// documents written by earlier deployments of the service.
type userDocument struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Username          string             `bson:"username"`
	Email             string             `bson:"email"`
	Password          string             `bson:"password"`
	LastLogin         *time.Time         `bson:"lastLogin"`
	CreatedDate       time.Time          `bson:"createdDate"`
	GenerateCodeCount map[string]int64   `bson:"generateCodeCount"`
	RefactorCodeCount map[string]int64   `bson:"refactorCodeCount"`
	RunCodeCount      map[string]int64   `bson:"runCodeCount"`
}

// mongoUserRepository is the [UserRepository] backed by the document store.
// Each account is one document carrying its three counter mappings.
type mongoUserRepository struct {
	db     collectionProvider
	logger *logger.Logger
}

// NewMongoUserRepository constructs a [UserRepository] on top of db.
func NewMongoUserRepository(db *MongoDB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating document store user repository")
	return &mongoUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	doc := toUserDocument(user)
	doc.ID = primitive.NewObjectID()

	err := r.withCollection(ctx, func(c *mongo.Collection) error {
		_, err := c.InsertOne(ctx, doc)
		return err
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Debug().Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("duplicate key")
			return models.User{}, classifyDuplicateKey(err)
		}
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return doc.toModel(), nil
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, ErrUserNotFound
	}
	return r.findUser(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *mongoUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findUser(ctx context.Context, filter bson.M) (models.User, error) {
	log := logger.FromContext(ctx)

	var doc userDocument
	err := r.withCollection(ctx, func(c *mongo.Collection) error {
		return c.FindOne(ctx, filter).Decode(&doc)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.findUser").Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}

	return doc.toModel(), nil
}

func (r *mongoUserRepository) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return r.setField(ctx, userID, "lastLogin", lastLogin)
}

func (r *mongoUserRepository) UpdateUsername(ctx context.Context, userID, username string) error {
	return r.setField(ctx, userID, "username", username)
}

func (r *mongoUserRepository) UpdateEmail(ctx context.Context, userID, email string) error {
	return r.setField(ctx, userID, "email", email)
}

func (r *mongoUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	return r.setField(ctx, userID, "password", passwordHash)
}

// setField applies a single-field $set to one account.
func (r *mongoUserRepository) setField(ctx context.Context, userID, field string, value any) error {
	log := logger.FromContext(ctx)

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	var result *mongo.UpdateResult
	err = r.withCollection(ctx, func(c *mongo.Collection) error {
		var opErr error
		result, opErr = c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{field: value}})
		return opErr
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return classifyDuplicateKey(err)
		}
		log.Err(err).Str("func", "*mongoUserRepository.setField").Str("field", field).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}

	var result *mongo.DeleteResult
	err = r.withCollection(ctx, func(c *mongo.Collection) error {
		var opErr error
		result, opErr = c.DeleteOne(ctx, bson.M{"_id": id})
		return opErr
	})
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// IncrementCounter applies $inc to "<kind field>.<language>", which creates
// the key at one when it is absent.
func (r *mongoUserRepository) IncrementCounter(ctx context.Context, username string, kind models.CounterKind, language models.Language) error {
	log := logger.FromContext(ctx)

	field := kind.Field()
	if field == "" {
		return fmt.Errorf("%w: unknown counter kind %q", ErrMongoOperation, kind)
	}

	var result *mongo.UpdateResult
	err := r.withCollection(ctx, func(c *mongo.Collection) error {
		var opErr error
		result, opErr = c.UpdateOne(ctx,
			bson.M{"username": username},
			bson.M{"$inc": bson.M{field + "." + string(language): 1}},
		)
		return opErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*mongoUserRepository.IncrementCounter").
			Str("kind", string(kind)).
			Str("language", string(language)).
			Msg("error incrementing counter")
		return fmt.Errorf("%w: %w", ErrMongoOperation, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

// withCollection runs op against the users collection and reports the
// outcome to the provider.
func (r *mongoUserRepository) withCollection(ctx context.Context, op func(c *mongo.Collection) error) error {
	collection, err := r.db.Collection(ctx)
	if err != nil {
		return err
	}

	err = op(collection)
	r.db.Invalidate(err)

	return err
}

// classifyDuplicateKey maps an E11000 error to the violated index.
func classifyDuplicateKey(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "username_1"):
		return ErrUsernameTaken
	case strings.Contains(msg, "email_1"):
		return ErrEmailTaken
	default:
		return ErrUserAlreadyExists
	}
}

func toUserDocument(user models.User) userDocument {
	return userDocument{
		Username:          user.Username,
		Email:             user.Email,
		Password:          user.PasswordHash,
		LastLogin:         user.LastLogin,
		CreatedDate:       user.CreatedAt,
		GenerateCodeCount: countersToDocument(user.GenerateCodeCount),
		RefactorCodeCount: countersToDocument(user.RefactorCodeCount),
		RunCodeCount:      countersToDocument(user.RunCodeCount),
	}
}

func (d userDocument) toModel() models.User {
	return models.User{
		UserID:            d.ID.Hex(),
		Username:          d.Username,
		Email:             d.Email,
		PasswordHash:      d.Password,
		LastLogin:         d.LastLogin,
		CreatedAt:         d.CreatedDate,
		GenerateCodeCount: countersFromDocument(d.GenerateCodeCount),
		RefactorCodeCount: countersFromDocument(d.RefactorCodeCount),
		RunCodeCount:      countersFromDocument(d.RunCodeCount),
	}
}

func countersToDocument(counters models.Counters) map[string]int64 {
	doc := make(map[string]int64, len(models.Languages))
	for _, lang := range models.Languages {
		doc[string(lang)] = counters[lang]
	}
	return doc
}

// countersFromDocument seeds every supported key so missing keys read as zero.
func countersFromDocument(doc map[string]int64) models.Counters {
	counters := models.NewCounters()
	for key, count := range doc {
		counters[models.Language(key)] = count
	}
	return counters
}
