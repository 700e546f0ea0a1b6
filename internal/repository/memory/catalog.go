package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type categoryRow struct{ model.Category }

func (r *categoryRow) created() time.Time { return r.CreatedAt }
func (r *categoryRow) key() uuid.UUID     { return r.ID }

func (r *categoryRow) value() *model.Category {
	c := r.Category
	return &c
}

type CategoryRepository struct {
	db *db
}

func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row.value(), nil
}

func (r *CategoryRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.sorted() {
		if row.ID != match.ExcludeID && row.Name == match.Name {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.sorted()
	categories := make([]*model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.value())
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[category.ID]; ok {
		return conflict("id")
	}
	if err := r.checkUnique(category); err != nil {
		return err
	}
	r.db.categories[category.ID] = &categoryRow{Category: *category}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(category); err != nil {
		return err
	}
	r.db.categories[category.ID] = &categoryRow{Category: *category}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.categories[id]; !ok {
		return repository.ErrNotFound
	}
	for _, m := range r.db.medicines {
		if m.CategoryID == id {
			return inUse("categoryId")
		}
	}
	delete(r.db.categories, id)
	return nil
}

func (r *CategoryRepository) checkUnique(category *model.Category) error {
	for id, row := range r.db.categories {
		if id != category.ID && row.Name == category.Name {
			return conflict("name")
		}
	}
	return nil
}

func (r *CategoryRepository) sorted() []*categoryRow {
	rows := make([]*categoryRow, 0, len(r.db.categories))
	for _, row := range r.db.categories {
		rows = append(rows, row)
	}
	sortByCreated(rows)
	return rows
}

type medicineRow struct{ model.Medicine }

func (r *medicineRow) created() time.Time { return r.CreatedAt }
func (r *medicineRow) key() uuid.UUID     { return r.ID }

func (r *medicineRow) value() *model.Medicine {
	m := copyMedicine(r.Medicine)
	return &m
}

func copyMedicine(m model.Medicine) model.Medicine {
	m.Types = cloneStrings(m.Types)
	m.Category = nil
	return m
}

type MedicineRepository struct {
	db *db
}

func (r *MedicineRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Medicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.medicines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.db.loadMedicine(row, include), nil
}

func (r *MedicineRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Medicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.sorted() {
		if row.ID != match.ExcludeID && row.Name == match.Name {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MedicineRepository) List(ctx context.Context, filter model.MedicineFilter, include ...model.Relation) ([]*model.Medicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	medicines := make([]*model.Medicine, 0, len(r.db.medicines))
	for _, row := range r.sorted() {
		if filter.CategoryID != nil && row.CategoryID != *filter.CategoryID {
			continue
		}
		medicines = append(medicines, r.db.loadMedicine(row, include))
	}
	return medicines, nil
}

func (r *MedicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.medicines[medicine.ID]; ok {
		return conflict("id")
	}
	if err := r.check(medicine); err != nil {
		return err
	}
	r.db.medicines[medicine.ID] = &medicineRow{Medicine: copyMedicine(*medicine)}
	return nil
}

func (r *MedicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.medicines[medicine.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.check(medicine); err != nil {
		return err
	}
	r.db.medicines[medicine.ID] = &medicineRow{Medicine: copyMedicine(*medicine)}
	return nil
}

func (r *MedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.medicines[id]; !ok {
		return repository.ErrNotFound
	}
	for _, pm := range r.db.prescriptionMedicines {
		if pm.MedicineID == id {
			return inUse("medicineId")
		}
	}
	delete(r.db.medicines, id)
	return nil
}

func (r *MedicineRepository) check(medicine *model.Medicine) error {
	if _, ok := r.db.categories[medicine.CategoryID]; !ok {
		return missingReference("categoryId")
	}
	for id, row := range r.db.medicines {
		if id != medicine.ID && row.Name == medicine.Name {
			return conflict("name")
		}
	}
	return nil
}

func (r *MedicineRepository) sorted() []*medicineRow {
	rows := make([]*medicineRow, 0, len(r.db.medicines))
	for _, row := range r.db.medicines {
		rows = append(rows, row)
	}
	sortByCreated(rows)
	return rows
}

func (d *db) loadMedicine(row *medicineRow, include []model.Relation) *model.Medicine {
	m := row.value()
	if model.Includes(include, model.RelCategory) {
		if c, ok := d.categories[m.CategoryID]; ok {
			m.Category = c.value()
		}
	}
	return m
}

type diseaseRow struct{ model.Disease }

func (r *diseaseRow) created() time.Time { return r.CreatedAt }
func (r *diseaseRow) key() uuid.UUID     { return r.ID }

func (r *diseaseRow) value() *model.Disease {
	d := copyDisease(r.Disease)
	return &d
}

func copyDisease(d model.Disease) model.Disease {
	d.SignsAndEffects = cloneStrings(d.SignsAndEffects)
	return d
}

type DiseaseRepository struct {
	db *db
}

func (r *DiseaseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Disease, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.diseases[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row.value(), nil
}

func (r *DiseaseRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*model.Disease, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(ids))
	diseases := make([]*model.Disease, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if row, ok := r.db.diseases[id]; ok {
			diseases = append(diseases, row.value())
		}
	}
	return diseases, nil
}

func (r *DiseaseRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Disease, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.sorted() {
		if row.ID != match.ExcludeID && row.Name == match.Name {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *DiseaseRepository) List(ctx context.Context) ([]*model.Disease, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := r.sorted()
	diseases := make([]*model.Disease, 0, len(rows))
	for _, row := range rows {
		diseases = append(diseases, row.value())
	}
	return diseases, nil
}

func (r *DiseaseRepository) Create(ctx context.Context, disease *model.Disease) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.diseases[disease.ID]; ok {
		return conflict("id")
	}
	if err := r.checkUnique(disease); err != nil {
		return err
	}
	r.db.diseases[disease.ID] = &diseaseRow{Disease: copyDisease(*disease)}
	return nil
}

func (r *DiseaseRepository) Update(ctx context.Context, disease *model.Disease) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.diseases[disease.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(disease); err != nil {
		return err
	}
	r.db.diseases[disease.ID] = &diseaseRow{Disease: copyDisease(*disease)}
	return nil
}

// Delete cascades to health check links
func (r *DiseaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.diseases[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.diseases, id)
	for hcID, links := range r.db.healthCheckDiseases {
		kept := links[:0]
		for _, d := range links {
			if d != id {
				kept = append(kept, d)
			}
		}
		r.db.healthCheckDiseases[hcID] = kept
	}
	return nil
}

func (r *DiseaseRepository) checkUnique(disease *model.Disease) error {
	for id, row := range r.db.diseases {
		if id != disease.ID && row.Name == disease.Name {
			return conflict("name")
		}
	}
	return nil
}

func (r *DiseaseRepository) sorted() []*diseaseRow {
	rows := make([]*diseaseRow, 0, len(r.db.diseases))
	for _, row := range r.db.diseases {
		rows = append(rows, row)
	}
	sortByCreated(rows)
	return rows
}
