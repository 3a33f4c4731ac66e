package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Gestion-Solicitudes/config"
	"Gestion-Solicitudes/models"
)

type SectionRepository interface {
	CreateSection(ctx context.Context, section *models.Section) (*mongo.InsertOneResult, error)
	GetAllSections(ctx context.Context) ([]models.Section, error)
	FindSectionByName(ctx context.Context, name string) (*models.Section, error)
}

type sectionRepository struct {
	collection *mongo.Collection
}

func NewSectionRepository() SectionRepository {
	return &sectionRepository{
		collection: config.GetCollection(config.SectionCollection),
	}
}

func (r *sectionRepository) CreateSection(ctx context.Context, section *models.Section) (*mongo.InsertOneResult, error) {
	section.CreatedAt = time.Now()
	section.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, section)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("la sección ya existe")
		}
		return nil, fmt.Errorf("no se pudo crear la sección: %w", err)
	}
	return result, nil
}

func (r *sectionRepository) GetAllSections(ctx context.Context) ([]models.Section, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("no se pudieron listar las secciones: %w", err)
	}
	defer cursor.Close(ctx)

	var sections []models.Section
	if err = cursor.All(ctx, &sections); err != nil {
		return nil, fmt.Errorf("no se pudieron decodificar las secciones: %w", err)
	}
	return sections, nil
}

func (r *sectionRepository) FindSectionByName(ctx context.Context, name string) (*models.Section, error) {
	var section models.Section
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&section)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("no se pudo buscar la sección: %w", err)
	}
	return &section, nil
}
