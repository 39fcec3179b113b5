package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	appidentity "github.com/beamworkflow/backend/internal/application/identity"
	appwork "github.com/beamworkflow/backend/internal/application/work"
	appworkgroup "github.com/beamworkflow/backend/internal/application/workgroup"
	"github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/work"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
	"github.com/beamworkflow/backend/internal/infrastructure/auth"
	"github.com/beamworkflow/backend/internal/infrastructure/config"
	"github.com/beamworkflow/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is the shared in-memory backing for all repository fakes.
type memStore struct {
	users     map[string]*identity.User
	images    map[string][]byte
	groups    map[string]*workgroup.Workgroup
	members   []*workgroup.Member
	relations []*workgroup.Relation
	works     map[string]*work.Work
}

func newMemStore() *memStore {
	return &memStore{
		users:  map[string]*identity.User{},
		images: map[string][]byte{},
		groups: map[string]*workgroup.Workgroup{},
		works:  map[string]*work.Work{},
	}
}

// --- identity.UserRepository ---

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(_ context.Context, u *identity.User) error {
	r.s.users[u.Email] = u
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u *identity.User) error {
	r.s.users[u.Email] = u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	u, ok := r.s.users[strings.ToLower(email)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.s.users[strings.ToLower(email)]
	return ok, nil
}

func (r *memUserRepo) DeleteAccount(_ context.Context, email string) error {
	delete(r.s.users, email)
	return nil
}

// --- storage.ImageStore ---

type memImageStore struct{ s *memStore }

func (m *memImageStore) Save(_ context.Context, fileName string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.s.images[fileName] = data
	return nil
}

func (m *memImageStore) Open(_ context.Context, fileName string) (io.ReadCloser, error) {
	data, ok := m.s.images[fileName]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memImageStore) Delete(_ context.Context, fileName string) error {
	delete(m.s.images, fileName)
	return nil
}

// --- work.WorkRepository ---

type memWorkRepo struct{ s *memStore }

func (r *memWorkRepo) Create(_ context.Context, item *work.Work) error {
	r.s.works[item.WorkID] = item
	return nil
}

func (r *memWorkRepo) Update(_ context.Context, item *work.Work) error {
	if _, ok := r.s.works[item.WorkID]; !ok {
		return shared.ErrNotFound
	}
	r.s.works[item.WorkID] = item
	return nil
}

func (r *memWorkRepo) Delete(_ context.Context, workID string) error {
	if _, ok := r.s.works[workID]; !ok {
		return shared.ErrNotFound
	}
	delete(r.s.works, workID)
	return nil
}

func (r *memWorkRepo) FindByID(_ context.Context, workID string) (*work.Work, error) {
	item, ok := r.s.works[workID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (r *memWorkRepo) Exists(_ context.Context, workID string) (bool, error) {
	_, ok := r.s.works[workID]
	return ok, nil
}

func (r *memWorkRepo) OverviewsFor(_ context.Context, email string) ([]work.Overview, error) {
	var rows []work.Overview
	for _, item := range r.s.works {
		if item.CreatedBy != email && item.AssignedTo != email {
			continue
		}
		rows = append(rows, work.Overview{
			WorkID:      item.WorkID,
			WorkgroupID: item.WorkgroupID,
			Title:       item.Title,
			CreatedBy:   item.CreatedBy,
			CreatedAt:   item.CreatedAt,
			AssignedTo:  item.AssignedTo,
			Priority:    item.Priority,
			IsCompleted: item.IsCompleted,
			Seen:        item.Seen,
		})
	}
	return rows, nil
}

func (r *memWorkRepo) DetailByID(_ context.Context, workID string) (*work.Detail, error) {
	item, ok := r.s.works[workID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &work.Detail{
		WorkID:      item.WorkID,
		WorkgroupID: item.WorkgroupID,
		Title:       item.Title,
		Description: item.Description,
		UpdatedAt:   item.UpdatedAt,
		CreatedAt:   item.CreatedAt,
		CreatedBy:   item.CreatedBy,
		AssignedTo:  item.AssignedTo,
		Priority:    item.Priority,
		Seen:        item.Seen,
		IsCompleted: item.IsCompleted,
		CompletedAt: item.CompletedAt,
		DueDate:     item.DueDate,
	}, nil
}

// --- workgroup.WorkgroupRepository ---

type memGroupRepo struct{ s *memStore }

func (r *memGroupRepo) CreateWithAdmin(_ context.Context, g *workgroup.Workgroup, admin *workgroup.Member) error {
	r.s.groups[g.WorkgroupID] = g
	r.s.members = append(r.s.members, admin)
	return nil
}

func (r *memGroupRepo) Update(_ context.Context, g *workgroup.Workgroup) error {
	if _, ok := r.s.groups[g.WorkgroupID]; !ok {
		return shared.ErrNotFound
	}
	r.s.groups[g.WorkgroupID] = g
	return nil
}

func (r *memGroupRepo) DeleteCascade(_ context.Context, workgroupID string) error {
	if _, ok := r.s.groups[workgroupID]; !ok {
		return shared.ErrNotFound
	}
	var members []*workgroup.Member
	for _, m := range r.s.members {
		if m.WorkgroupID != workgroupID {
			members = append(members, m)
		}
	}
	r.s.members = members
	var relations []*workgroup.Relation
	for _, rel := range r.s.relations {
		if rel.WorkgroupID != workgroupID {
			relations = append(relations, rel)
		}
	}
	r.s.relations = relations
	for id, item := range r.s.works {
		if item.WorkgroupID == workgroupID {
			delete(r.s.works, id)
		}
	}
	delete(r.s.groups, workgroupID)
	return nil
}

func (r *memGroupRepo) FindByID(_ context.Context, workgroupID string) (*workgroup.Workgroup, error) {
	g, ok := r.s.groups[workgroupID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return g, nil
}

func (r *memGroupRepo) Exists(_ context.Context, workgroupID string) (bool, error) {
	_, ok := r.s.groups[workgroupID]
	return ok, nil
}

func (r *memGroupRepo) OverviewsFor(_ context.Context, email string) ([]workgroup.Overview, error) {
	var rows []workgroup.Overview
	for _, m := range r.s.members {
		if m.MemberEmail != email {
			continue
		}
		g := r.s.groups[m.WorkgroupID]
		rows = append(rows, workgroup.Overview{
			WorkgroupID: m.WorkgroupID,
			Name:        g.Name,
			Role:        m.Role,
			CreatedAt:   g.CreatedAt,
		})
	}
	return rows, nil
}

func (r *memGroupRepo) Detail(_ context.Context, workgroupID string) (*workgroup.Detail, error) {
	g, ok := r.s.groups[workgroupID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &workgroup.Detail{
		WorkgroupID: g.WorkgroupID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}, nil
}

// --- workgroup.MemberRepository ---

type memMemberRepo struct{ s *memStore }

func (r *memMemberRepo) AddWithRelation(_ context.Context, m *workgroup.Member, rel *workgroup.Relation) error {
	r.s.members = append(r.s.members, m)
	r.s.relations = append(r.s.relations, rel)
	return nil
}

func (r *memMemberRepo) IsAdminOrAssistAdmin(_ context.Context, workgroupID, email string, includeAssistant bool) (bool, error) {
	for _, m := range r.s.members {
		if m.WorkgroupID != workgroupID || m.MemberEmail != email {
			continue
		}
		if m.Role == workgroup.RoleAdmin {
			return true, nil
		}
		if includeAssistant && m.Role == workgroup.RoleAssistAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMemberRepo) IsMemberAnywhere(_ context.Context, email string) (bool, error) {
	for _, m := range r.s.members {
		if m.MemberEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memMemberRepo) UpdateRole(_ context.Context, workgroupID, email string, role workgroup.Role) error {
	for _, m := range r.s.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			m.Role = role
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memMemberRepo) RemoveWithRelations(_ context.Context, workgroupID, email string) error {
	var members []*workgroup.Member
	for _, m := range r.s.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			continue
		}
		members = append(members, m)
	}
	r.s.members = members

	var relations []*workgroup.Relation
	for _, rel := range r.s.relations {
		if rel.WorkgroupID == workgroupID && (rel.SeniorEmail == email || rel.JuniorEmail == email) {
			continue
		}
		relations = append(relations, rel)
	}
	r.s.relations = relations
	return nil
}

func (r *memMemberRepo) ListByWorkgroup(_ context.Context, workgroupID string) ([]workgroup.MemberView, error) {
	var rows []workgroup.MemberView
	for _, m := range r.s.members {
		if m.WorkgroupID == workgroupID {
			rows = append(rows, r.view(m))
		}
	}
	return rows, nil
}

func (r *memMemberRepo) FindView(_ context.Context, workgroupID, email string) (*workgroup.MemberView, error) {
	for _, m := range r.s.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			view := r.view(m)
			return &view, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memMemberRepo) GroupsFor(_ context.Context, email string) ([]workgroup.GroupRef, error) {
	var rows []workgroup.GroupRef
	for _, m := range r.s.members {
		if m.MemberEmail != email {
			continue
		}
		g := r.s.groups[m.WorkgroupID]
		rows = append(rows, workgroup.GroupRef{WorkgroupID: m.WorkgroupID, Name: g.Name})
	}
	return rows, nil
}

func (r *memMemberRepo) view(m *workgroup.Member) workgroup.MemberView {
	view := workgroup.MemberView{
		WorkgroupID: m.WorkgroupID,
		MemberEmail: m.MemberEmail,
		Role:        m.Role,
	}
	if u, ok := r.s.users[m.MemberEmail]; ok {
		view.Username = u.Username
		view.UserImage = u.UserImage
	}
	return view
}

// --- workgroup.RelationRepository ---

type memRelationRepo struct{ s *memStore }

func (r *memRelationRepo) Create(_ context.Context, rel *workgroup.Relation) error {
	r.s.relations = append(r.s.relations, rel)
	return nil
}

func (r *memRelationRepo) Delete(_ context.Context, relationID string) error {
	for i, rel := range r.s.relations {
		if rel.RelationID == relationID {
			r.s.relations = append(r.s.relations[:i], r.s.relations[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *memRelationRepo) ExistsID(_ context.Context, relationID string) (bool, error) {
	for _, rel := range r.s.relations {
		if rel.RelationID == relationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRelationRepo) ExistsPair(_ context.Context, emailA, emailB string) (bool, error) {
	for _, rel := range r.s.relations {
		if (rel.SeniorEmail == emailA && rel.JuniorEmail == emailB) ||
			(rel.SeniorEmail == emailB && rel.JuniorEmail == emailA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRelationRepo) ListForParticipant(_ context.Context, workgroupID, email string) ([]workgroup.RelationView, error) {
	var rows []workgroup.RelationView
	for _, rel := range r.s.relations {
		if rel.WorkgroupID != workgroupID {
			continue
		}
		if rel.CreatedBy != email && rel.SeniorEmail != email && rel.JuniorEmail != email {
			continue
		}
		rows = append(rows, r.view(rel))
	}
	return rows, nil
}

func (r *memRelationRepo) FindByPair(_ context.Context, seniorEmail, juniorEmail string) (*workgroup.RelationView, error) {
	for _, rel := range r.s.relations {
		if rel.SeniorEmail == seniorEmail && rel.JuniorEmail == juniorEmail {
			view := r.view(rel)
			return &view, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRelationRepo) JuniorsOf(_ context.Context, workgroupID, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	for _, rel := range r.s.relations {
		if rel.WorkgroupID == workgroupID && rel.SeniorEmail == email {
			rows = append(rows, workgroup.JuniorView{WorkgroupID: rel.WorkgroupID, JuniorEmail: rel.JuniorEmail})
		}
	}
	return rows, nil
}

func (r *memRelationRepo) JuniorsOfAnywhere(_ context.Context, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	for _, rel := range r.s.relations {
		if rel.SeniorEmail == email {
			rows = append(rows, workgroup.JuniorView{WorkgroupID: rel.WorkgroupID, JuniorEmail: rel.JuniorEmail})
		}
	}
	return rows, nil
}

func (r *memRelationRepo) view(rel *workgroup.Relation) workgroup.RelationView {
	view := workgroup.RelationView{
		RelationID:  rel.RelationID,
		WorkgroupID: rel.WorkgroupID,
		SeniorEmail: rel.SeniorEmail,
		JuniorEmail: rel.JuniorEmail,
	}
	if u, ok := r.s.users[rel.SeniorEmail]; ok {
		view.SeniorName = u.Username
		view.SeniorImage = u.UserImage
	}
	if u, ok := r.s.users[rel.JuniorEmail]; ok {
		view.JuniorName = u.Username
		view.JuniorImage = u.UserImage
	}
	return view
}

// --- test harness ---

type testAPI struct {
	engine *gin.Engine
	store  *memStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	logger := zap.NewNop()

	userRepo := &memUserRepo{s: store}
	imageStore := &memImageStore{s: store}
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:          "handler-test-secret-key-0123456789ab",
		TokenExpiration: time.Hour,
		Issuer:          "beamworkflow-test",
	})

	userService := appidentity.NewUserService(userRepo, imageStore, tokens, logger)
	workService := appwork.NewWorkService(&memWorkRepo{s: store}, userRepo, logger)
	groupService := appworkgroup.NewWorkgroupService(
		&memGroupRepo{s: store}, &memMemberRepo{s: store}, &memRelationRepo{s: store}, userRepo, logger)
	relationService := appworkgroup.NewRelationService(
		&memRelationRepo{s: store}, &memMemberRepo{s: store}, &memGroupRepo{s: store}, userRepo, logger)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewUserHandler(userService, relationService)).
		Register(NewWorkHandler(workService)).
		Register(NewWorkgroupHandler(groupService)).
		Setup()

	return &testAPI{engine: engine, store: store}
}

func (a *testAPI) addUser(t *testing.T, email string) {
	t.Helper()
	u, err := identity.NewUser(email, "user-"+email, "secret123", "male")
	require.NoError(t, err)
	a.store.users[u.Email] = u
}

func (a *testAPI) addGroup(t *testing.T, adminEmail string) string {
	t.Helper()
	g, err := workgroup.NewWorkgroup("Test Group", "desc", adminEmail)
	require.NoError(t, err)
	a.store.groups[g.WorkgroupID] = g
	a.store.members = append(a.store.members,
		workgroup.NewMember(g.WorkgroupID, adminEmail, adminEmail, workgroup.RoleAdmin))
	return g.WorkgroupID
}

func (a *testAPI) addMember(workgroupID, email string, role workgroup.Role) {
	a.store.members = append(a.store.members,
		workgroup.NewMember(workgroupID, email, email, role))
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) form(method, path string, fields map[string]string) *httptest.ResponseRecorder {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testAPI) multipart(method, path string, fields map[string]string, fileField, fileName string, fileBody []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := writer.CreateFormFile(fileField, fileName)
		_, _ = part.Write(fileBody)
	}
	_ = writer.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return a.do(req)
}

type envelope struct {
	Title   string          `json:"title"`
	Message string          `json:"message"`
	Dto     json.RawMessage `json:"dto"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
