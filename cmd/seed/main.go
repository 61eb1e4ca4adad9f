package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"studynotes-be/internal/entity"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/pkg/database"
	"studynotes-be/pkg/password"

	"github.com/joho/godotenv"
)

type demoUser struct {
	entity.User
	Password string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	uow := unitofwork.NewRepositoryFactory(db, 5*time.Second).NewUnitOfWork(ctx)
	hasher := password.NewHasher(password.DefaultCost)

	log.Println("Seeding demo users...")

	users := []demoUser{
		{User: entity.User{CWID: "10000001", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.edu"}, Password: "password123"},
		{User: entity.User{CWID: "10000002", FirstName: "Alan", LastName: "Turing", Email: "alan@example.edu"}, Password: "password123"},
	}

	for _, u := range users {
		existing, err := uow.UserRepository().FindByEmail(ctx, u.Email)
		if err != nil {
			log.Fatalf("Error: lookup %s: %v", u.Email, err)
		}
		if existing != nil {
			log.Printf("User '%s' already exists, skipping...", u.Email)
			continue
		}

		hash, err := hasher.Hash(u.Password)
		if err != nil {
			log.Fatalf("Error: hash password: %v", err)
		}
		user := u.User
		user.PasswordHash = hash
		if err := uow.UserRepository().Create(ctx, &user); err != nil && !errors.Is(err, contract.ErrDuplicateCWID) {
			log.Fatalf("Error: create %s: %v", u.Email, err)
		}
		log.Printf("Created user %s (%s)", user.Email, user.CWID)
	}

	count, err := uow.NoteRepository().CountByAuthor(ctx, "10000001")
	if err != nil {
		log.Fatalf("Error: count notes: %v", err)
	}
	if count > 0 {
		log.Println("Demo notes already present, done.")
		return
	}

	log.Println("Seeding demo notes...")

	notes := []entity.Note{
		{AuthorId: "10000001", Title: "Midterm Review", Class: "MIS330", Topic: "SQL", Year: 2024, Content: "Joins, grouping and subqueries."},
		{AuthorId: "10000001", Title: "Normal Forms Cheat Sheet", Class: "MIS330", Topic: "Normalization", Year: 2024, Content: "1NF through BCNF with examples."},
		{AuthorId: "10000002", Title: "Big-O Refresher", Class: "CS201", Topic: "Algorithms", Year: 2023, Content: "Common complexities and how to derive them."},
	}
	for i := range notes {
		if err := uow.NoteRepository().Create(ctx, &notes[i]); err != nil {
			log.Fatalf("Error: create note %q: %v", notes[i].Title, err)
		}
	}

	ratings := []entity.Rating{
		{RaterId: "10000002", NoteId: notes[0].Id, Value: 5},
		{RaterId: "10000002", NoteId: notes[1].Id, Value: 4},
		{RaterId: "10000001", NoteId: notes[2].Id, Value: 4},
	}
	for i := range ratings {
		if err := uow.RatingRepository().Create(ctx, &ratings[i]); err != nil {
			log.Fatalf("Error: create rating: %v", err)
		}
	}

	log.Println("Seeding completed.")
}
