package helpers

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SignedDetails struct {
	Email     string
	Name      string
	Uid       string
	User_role string
	jwt.StandardClaims
}

// Auth issues and validates the HS256 token pair. The secret and the user
// collection come in through the constructor.
type Auth struct {
	secretKey      string
	userCollection *mongo.Collection
}

func NewAuth(secretKey string, userCollection *mongo.Collection) *Auth {
	return &Auth{secretKey: secretKey, userCollection: userCollection}
}

func (a *Auth) GenerateAllTokens(email string, name string, uid string, userRole string) (string, string, error) {
	claims := SignedDetails{
		Email:     email,
		Name:      name,
		Uid:       uid,
		User_role: userRole,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	refreshClaims := SignedDetails{
		Uid: uid,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(7 * 24 * time.Hour).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.secretKey))
	if err != nil {
		return "", "", err
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(a.secretKey))
	if err != nil {
		return "", "", err
	}
	return token, refreshToken, nil
}

func (a *Auth) UpdateAllTokens(ctx context.Context, token string, refreshToken string, userId string) error {
	var updateObj primitive.D
	updateObj = append(updateObj, bson.E{Key: "token", Value: token})
	updateObj = append(updateObj, bson.E{Key: "refresh_token", Value: refreshToken})
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	_, err := a.userCollection.UpdateOne(
		ctx,
		bson.M{"user_id": userId},
		bson.D{{Key: "$set", Value: updateObj}},
	)
	return err
}

func (a *Auth) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(a.secretKey), nil
		},
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok {
		return nil, errors.New("the token is invalid")
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, errors.New("token is expired")
	}
	return claims, nil
}
