package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"species-catalog/internal/domains/species/model"
	"species-catalog/internal/shared/utils"
	"species-catalog/pkg/cache"
)

// postgresRepository implements RepositoryInterface.
// List pages are cached in Redis and dropped on every mutation.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates the species repository
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	speciesListKeyPrefix = "species:list:"
	cacheTTL             = 5 * time.Minute

	speciesColumns = `id, scientific_name, common_name, kingdom, total_population, image, description, author_id, created_at, updated_at`
)

type cachedList struct {
	Items []model.Species `json:"items"`
	Total int64           `json:"total"`
}

func scanSpecies(row pgx.Row) (*model.Species, error) {
	var s model.Species
	err := row.Scan(
		&s.ID,
		&s.ScientificName,
		&s.CommonName,
		&s.Kingdom,
		&s.TotalPopulation,
		&s.Image,
		&s.Description,
		&s.Author,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepository) Create(ctx context.Context, author uuid.UUID, f model.SpeciesFields) (*model.Species, error) {
	query := `
        INSERT INTO species (scientific_name, common_name, kingdom, total_population, image, description, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + speciesColumns

	created, err := scanSpecies(r.pool.QueryRow(ctx, query,
		f.ScientificName,
		f.CommonName,
		string(f.Kingdom),
		f.TotalPopulation,
		f.Image,
		f.Description,
		author,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create species: %w", err)
	}

	r.InvalidateList(ctx)
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Species, error) {
	query := `SELECT ` + speciesColumns + ` FROM species WHERE id = $1`

	s, err := scanSpecies(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSpeciesNotFound
		}
		return nil, fmt.Errorf("failed to get species by id: %w", err)
	}
	return s, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.SpeciesFilter) ([]model.Species, int64, error) {
	cacheKey := listCacheKey(filter)

	var cached cachedList
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.Items, cached.Total, nil
	}

	var where utils.WhereBuilder
	if filter.Kingdom != "" {
		where.Add("kingdom = %s", string(filter.Kingdom))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where.Add("(scientific_name ILIKE %s OR common_name ILIKE %s)", "%"+search+"%")
	}
	args := where.Args()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM species`+where.SQL(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count species: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM species%s ORDER BY scientific_name ASC, id ASC LIMIT $%d OFFSET $%d`,
		speciesColumns, where.SQL(), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list species: %w", err)
	}
	defer rows.Close()

	items := make([]model.Species, 0, filter.Limit)
	for rows.Next() {
		s, err := scanSpecies(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan species: %w", err)
		}
		items = append(items, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate species: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, cachedList{Items: items, Total: total}, cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("species list cache write failed")
	}
	return items, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, id int64, actor uuid.UUID, f model.SpeciesFields) (*model.Species, error) {
	query := `
        UPDATE species
        SET scientific_name = $3,
            common_name = $4,
            kingdom = $5,
            total_population = $6,
            image = $7,
            description = $8,
            updated_at = NOW()
        WHERE id = $1 AND author_id = $2
        RETURNING ` + speciesColumns

	updated, err := scanSpecies(r.pool.QueryRow(ctx, query,
		id,
		actor,
		f.ScientificName,
		f.CommonName,
		string(f.Kingdom),
		f.TotalPopulation,
		f.Image,
		f.Description,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missOrForbidden(ctx, id)
		}
		return nil, fmt.Errorf("failed to update species: %w", err)
	}

	r.InvalidateList(ctx)
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64, actor uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM species WHERE id = $1 AND author_id = $2`, id, actor)
	if err != nil {
		return fmt.Errorf("failed to delete species: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrForbidden(ctx, id)
	}

	r.InvalidateList(ctx)
	return nil
}

func (r *postgresRepository) InvalidateList(ctx context.Context) {
	if err := r.cache.DeletePattern(ctx, speciesListKeyPrefix+"*"); err != nil {
		log.Warn().Err(err).Msg("species list cache invalidation failed")
	}
}

// missOrForbidden tells a missing row apart from one owned by someone else
func (r *postgresRepository) missOrForbidden(ctx context.Context, id int64) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM species WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check species existence: %w", err)
	}
	if exists {
		return model.ErrNotPermitted
	}
	return model.ErrSpeciesNotFound
}

func listCacheKey(f model.SpeciesFilter) string {
	return fmt.Sprintf("%s%s:%s:%d:%d",
		speciesListKeyPrefix,
		f.Kingdom,
		url.QueryEscape(strings.ToLower(strings.TrimSpace(f.Search))),
		f.Limit,
		f.Offset,
	)
}
