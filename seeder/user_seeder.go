package seeder

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"Gestion-Solicitudes/models"
	"Gestion-Solicitudes/repository"
)

func SeedUsers(userRepo *repository.UserRepository, sectionRepo repository.SectionRepository) {
	log.Println("Sembrando usuarios...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("No se pudo hashear la contraseña de seed: %v", err)
	}

	sections, err := sectionRepo.GetAllSections(ctx)
	if err != nil {
		log.Fatalf("No se pudieron listar las secciones: %v", err)
	}
	if len(sections) == 0 {
		log.Println("No hay secciones; siembra las secciones primero.")
		return
	}

	// Un admin por sección, para que cada sección tenga quién apruebe.
	for _, section := range sections {
		email := fmt.Sprintf("admin.%s@gestion-solicitudes.test", slug(section.Name))
		existing, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existing != nil {
			continue
		}
		admin := &models.User{
			Name:     "Admin " + section.Name,
			Email:    email,
			Password: string(hashedPassword),
			Role:     "admin",
			Position: "Jefe de Sección",
			Section:  section.Name,
		}
		if _, err := userRepo.CreateUser(ctx, admin); err != nil {
			log.Printf("No se pudo crear el admin de %s: %v", section.Name, err)
		}
	}

	firstNames := []string{"María", "José", "Lucía", "Carlos", "Ana", "Miguel", "Sofía", "Diego", "Valentina", "Andrés", "Camila", "Javier", "Paula", "Fernando", "Daniela"}
	lastNames := []string{"García", "Rodríguez", "Martínez", "López", "González", "Pérez", "Sánchez", "Ramírez", "Torres", "Flores", "Rivera", "Vargas"}
	positions := []string{"Analista", "Asistente", "Especialista", "Técnico", "Coordinador"}

	log.Println("Agregando 20 empleados...")
	for i := 1; i <= 20; i++ {
		email := fmt.Sprintf("empleado%02d@gestion-solicitudes.test", i)
		existing, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existing != nil {
			continue
		}

		fullName := fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))])
		section := sections[rand.Intn(len(sections))]

		empleado := &models.User{
			Name:     fullName,
			Email:    email,
			Password: string(hashedPassword),
			Role:     "empleado",
			Position: positions[rand.Intn(len(positions))],
			Section:  section.Name,
		}
		if _, err := userRepo.CreateUser(ctx, empleado); err != nil {
			log.Printf("No se pudo crear el usuario %s: %v", empleado.Name, err)
		} else {
			log.Printf("Usuario %s (%s) creado.", empleado.Name, empleado.Section)
		}
	}

	log.Println("Seeding de usuarios terminado.")
}

func slug(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ':
			out = append(out, '-')
		}
	}
	return string(out)
}
