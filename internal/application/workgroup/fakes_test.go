package workgroup

import (
	"context"
	"strings"

	domainid "github.com/beamworkflow/backend/internal/domain/identity"
	"github.com/beamworkflow/backend/internal/domain/shared"
	"github.com/beamworkflow/backend/internal/domain/workgroup"
)

// In-memory repository fakes shared by the service tests.

type fakeStore struct {
	users     map[string]*domainid.User
	groups    map[string]*workgroup.Workgroup
	members   []*workgroup.Member
	relations []*workgroup.Relation
	works     map[string]string // work id -> workgroup id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*domainid.User{},
		groups: map[string]*workgroup.Workgroup{},
		works:  map[string]string{},
	}
}

func (f *fakeStore) addUser(user *domainid.User) {
	f.users[user.Email] = user
}

// --- identity.UserRepository ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *domainid.User) error {
	r.store.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domainid.User) error {
	r.store.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domainid.User, error) {
	user, ok := r.store.users[strings.ToLower(email)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.store.users[strings.ToLower(email)]
	return ok, nil
}

func (r *fakeUserRepo) DeleteAccount(_ context.Context, email string) error {
	delete(r.store.users, email)
	return nil
}

// --- workgroup.WorkgroupRepository ---

type fakeGroupRepo struct{ store *fakeStore }

func (r *fakeGroupRepo) CreateWithAdmin(_ context.Context, group *workgroup.Workgroup, admin *workgroup.Member) error {
	r.store.groups[group.WorkgroupID] = group
	r.store.members = append(r.store.members, admin)
	return nil
}

func (r *fakeGroupRepo) Update(_ context.Context, group *workgroup.Workgroup) error {
	if _, ok := r.store.groups[group.WorkgroupID]; !ok {
		return shared.ErrNotFound
	}
	r.store.groups[group.WorkgroupID] = group
	return nil
}

func (r *fakeGroupRepo) DeleteCascade(_ context.Context, workgroupID string) error {
	if _, ok := r.store.groups[workgroupID]; !ok {
		return shared.ErrNotFound
	}
	var members []*workgroup.Member
	for _, m := range r.store.members {
		if m.WorkgroupID != workgroupID {
			members = append(members, m)
		}
	}
	r.store.members = members

	var relations []*workgroup.Relation
	for _, rel := range r.store.relations {
		if rel.WorkgroupID != workgroupID {
			relations = append(relations, rel)
		}
	}
	r.store.relations = relations

	for id, wg := range r.store.works {
		if wg == workgroupID {
			delete(r.store.works, id)
		}
	}

	delete(r.store.groups, workgroupID)
	return nil
}

func (r *fakeGroupRepo) FindByID(_ context.Context, workgroupID string) (*workgroup.Workgroup, error) {
	group, ok := r.store.groups[workgroupID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return group, nil
}

func (r *fakeGroupRepo) Exists(_ context.Context, workgroupID string) (bool, error) {
	_, ok := r.store.groups[workgroupID]
	return ok, nil
}

func (r *fakeGroupRepo) OverviewsFor(_ context.Context, email string) ([]workgroup.Overview, error) {
	var rows []workgroup.Overview
	for _, m := range r.store.members {
		if m.MemberEmail != email {
			continue
		}
		group := r.store.groups[m.WorkgroupID]
		rows = append(rows, workgroup.Overview{
			WorkgroupID: m.WorkgroupID,
			Name:        group.Name,
			Role:        m.Role,
			CreatedAt:   group.CreatedAt,
		})
	}
	return rows, nil
}

func (r *fakeGroupRepo) Detail(_ context.Context, workgroupID string) (*workgroup.Detail, error) {
	group, ok := r.store.groups[workgroupID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	detail := &workgroup.Detail{
		WorkgroupID: group.WorkgroupID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
	for _, m := range r.store.members {
		if m.WorkgroupID == workgroupID {
			detail.Role = m.Role
			break
		}
	}
	return detail, nil
}

// --- workgroup.MemberRepository ---

type fakeMemberRepo struct{ store *fakeStore }

func (r *fakeMemberRepo) AddWithRelation(_ context.Context, member *workgroup.Member, relation *workgroup.Relation) error {
	r.store.members = append(r.store.members, member)
	r.store.relations = append(r.store.relations, relation)
	return nil
}

func (r *fakeMemberRepo) IsAdminOrAssistAdmin(_ context.Context, workgroupID, email string, includeAssistant bool) (bool, error) {
	for _, m := range r.store.members {
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

func (r *fakeMemberRepo) IsMemberAnywhere(_ context.Context, email string) (bool, error) {
	for _, m := range r.store.members {
		if m.MemberEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) UpdateRole(_ context.Context, workgroupID, email string, role workgroup.Role) error {
	for _, m := range r.store.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			m.Role = role
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeMemberRepo) RemoveWithRelations(_ context.Context, workgroupID, email string) error {
	var members []*workgroup.Member
	for _, m := range r.store.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			continue
		}
		members = append(members, m)
	}
	r.store.members = members

	var relations []*workgroup.Relation
	for _, rel := range r.store.relations {
		if rel.WorkgroupID == workgroupID && (rel.SeniorEmail == email || rel.JuniorEmail == email) {
			continue
		}
		relations = append(relations, rel)
	}
	r.store.relations = relations
	return nil
}

func (r *fakeMemberRepo) ListByWorkgroup(_ context.Context, workgroupID string) ([]workgroup.MemberView, error) {
	var rows []workgroup.MemberView
	for _, m := range r.store.members {
		if m.WorkgroupID != workgroupID {
			continue
		}
		rows = append(rows, r.view(m))
	}
	return rows, nil
}

func (r *fakeMemberRepo) FindView(_ context.Context, workgroupID, email string) (*workgroup.MemberView, error) {
	for _, m := range r.store.members {
		if m.WorkgroupID == workgroupID && m.MemberEmail == email {
			view := r.view(m)
			return &view, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeMemberRepo) GroupsFor(_ context.Context, email string) ([]workgroup.GroupRef, error) {
	var rows []workgroup.GroupRef
	for _, m := range r.store.members {
		if m.MemberEmail != email {
			continue
		}
		group := r.store.groups[m.WorkgroupID]
		rows = append(rows, workgroup.GroupRef{WorkgroupID: m.WorkgroupID, Name: group.Name})
	}
	return rows, nil
}

func (r *fakeMemberRepo) view(m *workgroup.Member) workgroup.MemberView {
	view := workgroup.MemberView{
		WorkgroupID: m.WorkgroupID,
		MemberEmail: m.MemberEmail,
		Role:        m.Role,
	}
	if user, ok := r.store.users[m.MemberEmail]; ok {
		view.Username = user.Username
		view.UserImage = user.UserImage
	}
	return view
}

// --- workgroup.RelationRepository ---

type fakeRelationRepo struct{ store *fakeStore }

func (r *fakeRelationRepo) Create(_ context.Context, relation *workgroup.Relation) error {
	r.store.relations = append(r.store.relations, relation)
	return nil
}

func (r *fakeRelationRepo) Delete(_ context.Context, relationID string) error {
	for i, rel := range r.store.relations {
		if rel.RelationID == relationID {
			r.store.relations = append(r.store.relations[:i], r.store.relations[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeRelationRepo) ExistsID(_ context.Context, relationID string) (bool, error) {
	for _, rel := range r.store.relations {
		if rel.RelationID == relationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRelationRepo) ExistsPair(_ context.Context, emailA, emailB string) (bool, error) {
	for _, rel := range r.store.relations {
		if (rel.SeniorEmail == emailA && rel.JuniorEmail == emailB) ||
			(rel.SeniorEmail == emailB && rel.JuniorEmail == emailA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRelationRepo) ListForParticipant(_ context.Context, workgroupID, email string) ([]workgroup.RelationView, error) {
	var rows []workgroup.RelationView
	for _, rel := range r.store.relations {
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

func (r *fakeRelationRepo) FindByPair(_ context.Context, seniorEmail, juniorEmail string) (*workgroup.RelationView, error) {
	for _, rel := range r.store.relations {
		if rel.SeniorEmail == seniorEmail && rel.JuniorEmail == juniorEmail {
			view := r.view(rel)
			return &view, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRelationRepo) JuniorsOf(_ context.Context, workgroupID, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	for _, rel := range r.store.relations {
		if rel.WorkgroupID == workgroupID && rel.SeniorEmail == email {
			rows = append(rows, workgroup.JuniorView{
				WorkgroupID: rel.WorkgroupID,
				JuniorEmail: rel.JuniorEmail,
			})
		}
	}
	return rows, nil
}

func (r *fakeRelationRepo) JuniorsOfAnywhere(_ context.Context, email string) ([]workgroup.JuniorView, error) {
	var rows []workgroup.JuniorView
	for _, rel := range r.store.relations {
		if rel.SeniorEmail == email {
			rows = append(rows, workgroup.JuniorView{
				WorkgroupID: rel.WorkgroupID,
				JuniorEmail: rel.JuniorEmail,
			})
		}
	}
	return rows, nil
}

func (r *fakeRelationRepo) view(rel *workgroup.Relation) workgroup.RelationView {
	view := workgroup.RelationView{
		RelationID:  rel.RelationID,
		WorkgroupID: rel.WorkgroupID,
		SeniorEmail: rel.SeniorEmail,
		JuniorEmail: rel.JuniorEmail,
	}
	if user, ok := r.store.users[rel.SeniorEmail]; ok {
		view.SeniorName = user.Username
		view.SeniorImage = user.UserImage
	}
	if user, ok := r.store.users[rel.JuniorEmail]; ok {
		view.JuniorName = user.Username
		view.JuniorImage = user.UserImage
	}
	return view
}
