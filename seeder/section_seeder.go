package seeder

import (
	"context"
	"log"
	"time"

	"Gestion-Solicitudes/models"
	"Gestion-Solicitudes/repository"
)

var defaultSections = []string{
	"Administración",
	"Recursos Humanos",
	"Tecnología",
	"Ventas",
	"Producción",
	"Logística",
}

func SeedSections(sectionRepo repository.SectionRepository) {
	log.Println("Sembrando secciones...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range defaultSections {
		existing, err := sectionRepo.FindSectionByName(ctx, name)
		if err != nil {
			log.Printf("No se pudo verificar la sección %s: %v", name, err)
			continue
		}
		if existing != nil {
			continue
		}
		if _, err := sectionRepo.CreateSection(ctx, &models.Section{Name: name}); err != nil {
			log.Printf("No se pudo crear la sección %s: %v", name, err)
		} else {
			log.Printf("Sección %s creada.", name)
		}
	}

	log.Println("Seeding de secciones terminado.")
}
