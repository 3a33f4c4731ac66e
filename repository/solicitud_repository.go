package repository

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Gestion-Solicitudes/config"
	"Gestion-Solicitudes/models"
)

// SolicitudRepository es el adaptador del almacén de solicitudes: traduce
// documentos persistidos a entidades tipadas y expone creación, actualización
// por id y suscripción en vivo por alcance.
type SolicitudRepository interface {
	Create(ctx context.Context, solicitud *models.Solicitud) (*mongo.InsertOneResult, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Solicitud, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Solicitud, error)
	FindBySection(ctx context.Context, section string) ([]models.Solicitud, error)
	SubscribeBySection(ctx context.Context, section string, onChange func([]models.Solicitud)) (func(), error)
	SubscribeByUserID(ctx context.Context, userID primitive.ObjectID, onChange func([]models.Solicitud)) (func(), error)
	CountPendingBySection(ctx context.Context, section string) (int64, error)
}

type solicitudRepository struct {
	collection *mongo.Collection
}

func NewSolicitudRepository() SolicitudRepository {
	return &solicitudRepository{
		collection: config.GetCollection(config.SolicitudCollection),
	}
}

func (r *solicitudRepository) Create(ctx context.Context, solicitud *models.Solicitud) (*mongo.InsertOneResult, error) {
	solicitud.ID = primitive.NewObjectID()
	solicitud.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, solicitud)
	if err != nil {
		return nil, &StoreWriteError{Op: "create", Err: err}
	}
	return result, nil
}

// UpdateByID aplica valores absolutos via $set, nunca deltas: un write
// duplicado deja el documento en el mismo estado final.
func (r *solicitudRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) (*mongo.UpdateResult, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return nil, &StoreWriteError{Op: "update", Err: err}
	}
	return result, nil
}

func (r *solicitudRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Solicitud, error) {
	var solicitud models.Solicitud
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&solicitud)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &solicitud, nil
}

func (r *solicitudRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Solicitud, error) {
	return r.findSorted(ctx, bson.M{"user_id": userID})
}

func (r *solicitudRepository) FindBySection(ctx context.Context, section string) ([]models.Solicitud, error) {
	return r.findSorted(ctx, bson.M{"section": section})
}

// findSorted devuelve el conjunto completo que cumple el filtro, de la más
// reciente a la más antigua. Es el orden del feed.
func (r *solicitudRepository) findSorted(ctx context.Context, filter bson.M) ([]models.Solicitud, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var solicitudes []models.Solicitud
	if err = cursor.All(ctx, &solicitudes); err != nil {
		return nil, err
	}
	if len(solicitudes) == 0 {
		return []models.Solicitud{}, nil
	}
	return solicitudes, nil
}

func (r *solicitudRepository) SubscribeBySection(ctx context.Context, section string, onChange func([]models.Solicitud)) (func(), error) {
	return r.subscribe(ctx, "section="+section,
		bson.M{"section": section},
		bson.M{"fullDocument.section": section},
		onChange)
}

func (r *solicitudRepository) SubscribeByUserID(ctx context.Context, userID primitive.ObjectID, onChange func([]models.Solicitud)) (func(), error) {
	return r.subscribe(ctx, "user="+userID.Hex(),
		bson.M{"user_id": userID},
		bson.M{"fullDocument.user_id": userID},
		onChange)
}

// subscribe abre un change stream sobre la colección y, en cada evento que
// cumple el filtro, relee el conjunto completo y lo entrega a onChange, en el
// orden en que llegan los eventos. onChange recibe también un snapshot
// inicial antes de retornar. La función de cancelación detiene el stream,
// espera a que la goroutine termine y es segura de llamar más de una vez.
func (r *solicitudRepository) subscribe(ctx context.Context, scope string, filter, streamFilter bson.M, onChange func([]models.Solicitud)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: streamFilter}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	stream, err := r.collection.Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, &SubscriptionError{Scope: scope, Err: err}
	}

	snapshot := func() {
		solicitudes, err := r.findSorted(streamCtx, filter)
		if err != nil {
			if streamCtx.Err() == nil {
				log.Printf("feed %s: no se pudo releer el conjunto: %v", scope, err)
			}
			return
		}
		onChange(solicitudes)
	}

	snapshot()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer stream.Close(context.Background())

		for stream.Next(streamCtx) {
			snapshot()
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			log.Printf("feed %s interrumpido: %v", scope, err)
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
	return unsubscribe, nil
}

func (r *solicitudRepository) CountPendingBySection(ctx context.Context, section string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"section": section, "is_pending": true})
	if err != nil {
		return 0, err
	}
	return count, nil
}
