package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"expofloor/db"
	"expofloor/globals"
	"expofloor/models"
	"expofloor/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Store *db.Store
}

func New(store *db.Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username, email, and password are required")
		return
	}

	ctx := r.Context()
	err := h.Store.Users.FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": input.Email}, bson.M{"username": input.Username}},
	}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "User with this email or username already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		log.Printf("register: user lookup failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: bcrypt error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	role := input.Role
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	result, err := h.Store.Users.InsertOne(ctx, user)
	if err != nil {
		log.Printf("register: insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	user.ID = result.InsertedID.(primitive.ObjectID)

	token, err := GenerateToken(user)
	if err != nil {
		log.Printf("register: token generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message":      "User created successfully",
		"access_token": token,
		"user":         user.Public(),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx := r.Context()

	// The username field accepts either username or email.
	var user models.User
	err := h.Store.Users.FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"username": input.Username}, bson.M{"email": input.Username}},
	}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now().UTC()
	if _, err := h.Store.Users.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"last_login": now}},
	); err != nil {
		log.Printf("login: last_login update failed for %s: %v", user.Username, err)
	}
	user.LastLogin = &now

	token, err := GenerateToken(user)
	if err != nil {
		log.Printf("login: token generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":      "Login successful",
		"access_token": token,
		"user":         user.Public(),
	})
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	var user models.User
	if err := h.Store.Users.FindOne(r.Context(), bson.M{"_id": oid}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user.Public()})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":   true,
		"user_id": userID,
	})
}
