package routes

import (
	"github.com/gorilla/mux"

	"ideabank/handlers"
	"ideabank/middleware"
	"ideabank/ws"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// PUBLIC ROUTES (No auth required)
	// ====================
	r.HandleFunc("/api/users", handlers.CreateUser).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/users/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/users/logout", handlers.Logout).Methods(MethodsGetOnly...)

	r.HandleFunc("/api/auth/forgot-password", handlers.ForgotPassword).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/reset-password", handlers.ResetPassword).Methods(MethodsPostOnly...)

	// Idea activity feed, authenticated by short-lived ticket
	r.HandleFunc("/ws/ideas", ws.HandleIdeaFeed)

	// ====================
	// PROTECTED API ROUTES (Require a session)
	// ====================
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// ====================
	// USERS
	// ====================
	apiRouter.HandleFunc("/users/profile", handlers.GetProfile).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/change-password", handlers.ChangePassword).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.GetUser).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/users/{id}", handlers.DeleteUser).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/users/{userId}/status", handlers.UpdateUserStatus).Methods(MethodsPutOnly...)

	// WS ticket issuance (session-authed)
	apiRouter.HandleFunc("/auth/ws-ticket", handlers.GetWSTicket).Methods(MethodsGetOnly...)

	// ====================
	// IDEAS
	// ====================
	apiRouter.HandleFunc("/ideas/all/ideaCount", handlers.GetAllIdeaCount).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/info/withUserInfo", handlers.GetIdeasWithUserInfo).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas", handlers.CreateIdea).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/ideas", handlers.ListIdeas).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/{id}/user", handlers.GetIdeasBySubmitter).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/{id}/status", handlers.UpdateIdeaStatus).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/ideas/{id}/reward", handlers.GiveReward).Methods(MethodsPatchOnly...)
	apiRouter.HandleFunc("/ideas/{id}/like", handlers.LikeIdea).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/ideas/{id}/unlike", handlers.UnlikeIdea).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/ideas/{ideaId}/comment", handlers.AddComment).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.GetIdea).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.UpdateIdea).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/ideas/{id}", handlers.DeleteIdea).Methods(MethodsDeleteOnly...)

	// ====================
	// EMPLOYEE STATS
	// ====================
	apiRouter.HandleFunc("/employee/{employeeId}/stats", handlers.GetEmployeeStats).Methods(MethodsGetOnly...)

	// ====================
	// FILES
	// ====================
	apiRouter.HandleFunc("/files/upload", handlers.UploadFile).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/files/file/{id}", handlers.GetFileByID).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/files/name/{filename}", handlers.GetFileByName).Methods(MethodsGetOnly...)
}
