package auth

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "sync"

    "github.com/google/uuid"
    "github.com/warungkita/pos-service/internal/domain"
    "github.com/warungkita/pos-service/internal/store"
    "go.uber.org/zap"
)

var (
    ErrInvalidCredentials = errors.New("invalid credentials")
    ErrSessionNotFound    = errors.New("session not found")
    ErrUserNotFound       = errors.New("user not found")
    ErrLastAdmin          = errors.New("cannot remove the last admin")
    ErrEmailTaken         = errors.New("email already in use")
)

// credentials is the static demo login table. Password handling beyond
// this lookup is out of scope for the terminal.
var credentials = map[string]string{
    "admin@pos.com": "admin123",
    "kasir@pos.com": "kasir123",
}

// Service owns the user collection and the active bearer sessions.
type Service struct {
    mu       sync.RWMutex
    users    []domain.User
    sessions map[string]string // token -> user ID

    store  store.Store
    logger *zap.Logger
}

type userSnapshot struct {
    Users []domain.User `json:"users"`
}

type sessionSnapshot struct {
    Sessions map[string]string `json:"sessions"`
}

func NewService(ctx context.Context, st store.Store, seedDemo bool, logger *zap.Logger) (*Service, error) {
    s := &Service{
        sessions: make(map[string]string),
        store:    st,
        logger:   logger,
    }

    userData, err := st.Load(ctx, store.BucketUsers)
    if err != nil {
        return nil, fmt.Errorf("failed to load users: %w", err)
    }
    if userData != nil {
        var snap userSnapshot
        if err := json.Unmarshal(userData, &snap); err != nil {
            return nil, fmt.Errorf("failed to unmarshal users: %w", err)
        }
        s.users = snap.Users
    } else if seedDemo {
        s.users = seedUsers()
        s.persistUsers(ctx)
        logger.Info("User store seeded with demo data", zap.Int("users", len(s.users)))
    }

    sessionData, err := st.Load(ctx, store.BucketAuth)
    if err != nil {
        return nil, fmt.Errorf("failed to load sessions: %w", err)
    }
    if sessionData != nil {
        var snap sessionSnapshot
        if err := json.Unmarshal(sessionData, &snap); err != nil {
            return nil, fmt.Errorf("failed to unmarshal sessions: %w", err)
        }
        if snap.Sessions != nil {
            s.sessions = snap.Sessions
        }
    }

    return s, nil
}

func seedUsers() []domain.User {
    return []domain.User{
        {UserID: "1", Name: "Admin User", Email: "admin@pos.com", Role: domain.RoleAdmin},
        {UserID: "2", Name: "Kasir Demo", Email: "kasir@pos.com", Role: domain.RoleCashier},
        {UserID: "3", Name: "Budi Santoso", Email: "budi@pos.com", Role: domain.RoleCashier},
        {UserID: "4", Name: "Siti Rahayu", Email: "siti@pos.com", Role: domain.RoleCashier},
    }
}

func (s *Service) persistUsers(ctx context.Context) {
    data, err := json.Marshal(userSnapshot{Users: s.users})
    if err != nil {
        s.logger.Error("Failed to marshal users", zap.Error(err))
        return
    }
    if err := s.store.Save(ctx, store.BucketUsers, data); err != nil {
        s.logger.Error("Failed to persist users", zap.Error(err))
    }
}

func (s *Service) persistSessions(ctx context.Context) {
    data, err := json.Marshal(sessionSnapshot{Sessions: s.sessions})
    if err != nil {
        s.logger.Error("Failed to marshal sessions", zap.Error(err))
        return
    }
    if err := s.store.Save(ctx, store.BucketAuth, data); err != nil {
        s.logger.Error("Failed to persist sessions", zap.Error(err))
    }
}

// Login checks the static credential table and opens a bearer session.
func (s *Service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
    expected, ok := credentials[email]
    if !ok || expected != password {
        return "", domain.User{}, ErrInvalidCredentials
    }

    s.mu.Lock()
    defer s.mu.Unlock()

    user, err := s.findByEmailLocked(email)
    if err != nil {
        return "", domain.User{}, ErrInvalidCredentials
    }

    token := uuid.NewString()
    s.sessions[token] = user.UserID
    s.persistSessions(ctx)

    s.logger.Info("User logged in",
        zap.String("user_id", user.UserID),
        zap.String("role", string(user.Role)))

    return token, user, nil
}

func (s *Service) Logout(ctx context.Context, token string) {
    s.mu.Lock()
    defer s.mu.Unlock()

    if _, ok := s.sessions[token]; ok {
        delete(s.sessions, token)
        s.persistSessions(ctx)
    }
}

// Current resolves the bearer token to its user.
func (s *Service) Current(token string) (domain.User, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()

    userID, ok := s.sessions[token]
    if !ok {
        return domain.User{}, ErrSessionNotFound
    }
    for _, u := range s.users {
        if u.UserID == userID {
            return u, nil
        }
    }
    return domain.User{}, ErrSessionNotFound
}

func (s *Service) findByEmailLocked(email string) (domain.User, error) {
    for _, u := range s.users {
        if u.Email == email {
            return u, nil
        }
    }
    return domain.User{}, ErrUserNotFound
}

func (s *Service) ListUsers() []domain.User {
    s.mu.RLock()
    defer s.mu.RUnlock()

    out := make([]domain.User, len(s.users))
    copy(out, s.users)
    return out
}

func (s *Service) AddUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    if _, err := s.findByEmailLocked(req.Email); err == nil {
        return domain.User{}, ErrEmailTaken
    }

    user := domain.User{
        UserID: domain.NewID(),
        Name:   req.Name,
        Email:  req.Email,
        Role:   domain.UserRole(req.Role),
    }
    s.users = append(s.users, user)
    s.persistUsers(ctx)

    s.logger.Info("User created",
        zap.String("user_id", user.UserID),
        zap.String("role", string(user.Role)))

    return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) (domain.User, error) {
    s.mu.Lock()
    defer s.mu.Unlock()

    for i := range s.users {
        if s.users[i].UserID != userID {
            continue
        }

        if req.Email != nil && *req.Email != s.users[i].Email {
            if _, err := s.findByEmailLocked(*req.Email); err == nil {
                return domain.User{}, ErrEmailTaken
            }
        }
        // Demoting the only admin would leave the system unmanageable.
        if req.Role != nil &&
            s.users[i].Role == domain.RoleAdmin &&
            domain.UserRole(*req.Role) != domain.RoleAdmin &&
            s.adminCountLocked() <= 1 {
            return domain.User{}, ErrLastAdmin
        }

        u := &s.users[i]
        if req.Name != nil {
            u.Name = *req.Name
        }
        if req.Email != nil {
            u.Email = *req.Email
        }
        if req.Role != nil {
            u.Role = domain.UserRole(*req.Role)
        }
        s.persistUsers(ctx)
        return *u, nil
    }
    return domain.User{}, ErrUserNotFound
}

// DeleteUser refuses to remove the final admin-role user.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
    s.mu.Lock()
    defer s.mu.Unlock()

    for i, u := range s.users {
        if u.UserID != userID {
            continue
        }
        if u.Role == domain.RoleAdmin && s.adminCountLocked() <= 1 {
            return ErrLastAdmin
        }
        s.users = append(s.users[:i], s.users[i+1:]...)
        s.persistUsers(ctx)
        s.logger.Info("User deleted", zap.String("user_id", userID))
        return nil
    }
    return ErrUserNotFound
}

func (s *Service) adminCountLocked() int {
    count := 0
    for _, u := range s.users {
        if u.Role == domain.RoleAdmin {
            count++
        }
    }
    return count
}
