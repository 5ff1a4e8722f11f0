package handler

import (
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"
    "github.com/warungkita/pos-service/internal/auth"
    "github.com/warungkita/pos-service/internal/domain"
    "go.uber.org/zap"
)

type UserHandler struct {
    authService *auth.Service
    logger      *zap.Logger
}

func NewUserHandler(authService *auth.Service, logger *zap.Logger) *UserHandler {
    return &UserHandler{
        authService: authService,
        logger:      logger,
    }
}

func (h *UserHandler) Login(c *gin.Context) {
    var req domain.LoginRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
    if err != nil {
        c.JSON(http.StatusUnauthorized, gin.H{
            "error": "Invalid email or password",
        })
        return
    }

    c.JSON(http.StatusOK, domain.LoginResponse{
        Token: token,
        User:  user,
    })
}

func (h *UserHandler) Logout(c *gin.Context) {
    header := c.GetHeader("Authorization")
    token := strings.TrimPrefix(header, "Bearer ")

    h.authService.Logout(c.Request.Context(), token)
    c.Status(http.StatusNoContent)
}

func (h *UserHandler) Me(c *gin.Context) {
    user, ok := auth.CurrentUser(c)
    if !ok {
        c.JSON(http.StatusUnauthorized, gin.H{
            "error": "Not authenticated",
        })
        return
    }
    c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
    c.JSON(http.StatusOK, h.authService.ListUsers())
}

func (h *UserHandler) CreateUser(c *gin.Context) {
    var req domain.CreateUserRequest

    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    user, err := h.authService.AddUser(c.Request.Context(), req)
    if err != nil {
        if err == auth.ErrEmailTaken {
            c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
            return
        }

        h.logger.Error("Failed to create user", zap.Error(err))
        c.JSON(http.StatusInternalServerError, gin.H{
            "error": "Failed to create user",
        })
        return
    }

    c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
    userID := c.Param("id")

    var req domain.UpdateUserRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        h.logger.Error("Invalid request", zap.Error(err))
        c.JSON(http.StatusBadRequest, gin.H{
            "error": "Invalid request format",
        })
        return
    }

    user, err := h.authService.UpdateUser(c.Request.Context(), userID, req)
    if err != nil {
        switch err {
        case auth.ErrUserNotFound:
            c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
        case auth.ErrEmailTaken:
            c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
        case auth.ErrLastAdmin:
            c.JSON(http.StatusConflict, gin.H{"error": "Cannot remove the last admin"})
        default:
            h.logger.Error("Failed to update user",
                zap.String("user_id", userID),
                zap.Error(err))
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
        }
        return
    }

    c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
    userID := c.Param("id")

    if err := h.authService.DeleteUser(c.Request.Context(), userID); err != nil {
        switch err {
        case auth.ErrUserNotFound:
            c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
        case auth.ErrLastAdmin:
            c.JSON(http.StatusConflict, gin.H{"error": "Cannot delete the last admin"})
        default:
            h.logger.Error("Failed to delete user",
                zap.String("user_id", userID),
                zap.Error(err))
            c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
        }
        return
    }

    c.Status(http.StatusNoContent)
}
