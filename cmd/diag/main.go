// Command diag checks a deployment end to end: required configuration,
// database reachability, the administrator account, and a handful of local
// routes. Exit code 0 means everything passed.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var requiredVars = []string{"MONGODB_URL", "SECRET_KEY", "PAYMENT_GATEWAY_URL"}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	ok := true
	for _, name := range requiredVars {
		if os.Getenv(name) == "" {
			fmt.Printf("FAIL  %s is not set\n", name)
			ok = false
		} else {
			fmt.Printf("ok    %s is set\n", name)
		}
	}
	if !ok {
		os.Exit(1)
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "restaurant"
	}
	db, err := database.Connect(os.Getenv("MONGODB_URL"), databaseName)
	if err != nil {
		fmt.Printf("FAIL  mongodb unreachable: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ok    mongodb reachable")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ensureAdmin(ctx, db); err != nil {
		fmt.Printf("FAIL  admin account: %v\n", err)
		os.Exit(1)
	}

	if !pingRoutes() {
		os.Exit(1)
	}
	fmt.Println("all checks passed")
}

func ensureAdmin(ctx context.Context, db *database.Database) error {
	userCollection := db.OpenCollection("user")

	cursor, err := userCollection.Find(ctx, bson.M{"user_role": "ADMIN"})
	if err != nil {
		return err
	}
	var admins []models.User
	if err := cursor.All(ctx, &admins); err != nil {
		return err
	}
	if len(admins) > 0 {
		for _, admin := range admins {
			fmt.Printf("ok    admin account: %s\n", *admin.Email)
		}
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return fmt.Errorf("no admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD are not set")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return err
	}

	name := "Administrator"
	phone := "n/a"
	role := "ADMIN"
	hashedStr := string(hashed)
	now := time.Now()
	admin := models.User{
		ID:         primitive.NewObjectID(),
		Name:       &name,
		Password:   &hashedStr,
		Email:      &email,
		Phone:      &phone,
		User_role:  &role,
		Created_at: now,
		Updated_at: now,
	}
	admin.User_id = admin.ID.Hex()

	if _, err := userCollection.InsertOne(ctx, admin); err != nil {
		return err
	}
	fmt.Printf("ok    created admin account %s\n", email)
	return nil
}

func pingRoutes() bool {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	client := &http.Client{Timeout: 5 * time.Second}
	ok := true
	for _, path := range []string{"/health", "/products", "/categories"} {
		url := fmt.Sprintf("http://localhost:%s%s", port, path)
		response, err := client.Get(url)
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			ok = false
			continue
		}
		response.Body.Close()
		if response.StatusCode != http.StatusOK {
			fmt.Printf("FAIL  %s: status %d\n", path, response.StatusCode)
			ok = false
			continue
		}
		fmt.Printf("ok    %s\n", path)
	}
	return ok
}
