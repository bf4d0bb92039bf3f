package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/organizations"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// namespace scopes generated ids so equal seeds produce equal ids.
var namespace = uuid.MustParse("6f1c3a52-8d0e-4b7a-9a43-2f5e1d7c9b10")

var (
	firstNames = []string{"Ada", "Grace", "Alan", "Katherine", "Linus", "Margaret", "Dennis", "Barbara", "Ken", "Frances", "Edsger", "Radia", "Tim", "Hedy", "John", "Sophie", "Niklaus", "Lynn", "Donald", "Jean"}
	lastNames  = []string{"Lovelace", "Hopper", "Turing", "Johnson", "Torvalds", "Hamilton", "Ritchie", "Liskov", "Thompson", "Allen", "Dijkstra", "Perlman", "Berners-Lee", "Lamarr", "Backus", "Wilson", "Wirth", "Conway", "Knuth", "Sammet"}
	orgPrefix  = []string{"Acme", "Bluefin", "Café", "Northwind", "Globex", "Initech", "Umbrella", "Soylent", "Vandelay", "Hooli", "Pied Piper", "Stark", "Wayne", "Wonka", "Tyrell", "Cyberdyne"}
	orgSuffix  = []string{"Analytics", "Labs", "Systems", "Logistics", "Studios", "Foods", "Health", "Robotics"}
	countries  = []string{"US", "BR", "DE", "FR", "GB", "CA", "PT", "JP", ""}
)

// seatPrice is the monthly price per seat in cents.
var seatPrice = map[storage.Plan]int64{
	storage.PlanFree:       0,
	storage.PlanStarter:    900,
	storage.PlanBusiness:   2400,
	storage.PlanEnterprise: 4900,
}

type dataset struct {
	admin         storage.User
	organizations []storage.Organization
	users         []storage.User
}

// generate builds a deterministic dataset for seed anchored at now.
func generate(seed int64, now time.Time, orgCount, userCount int, adminEmail string) dataset {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	now = now.UTC().Truncate(time.Second)
	data := dataset{
		admin: storage.User{
			ID:          stableID("admin", adminEmail),
			Name:        "Backoffice Admin",
			Email:       adminEmail,
			Role:        storage.RoleAdmin,
			Status:      storage.UserActive,
			CreatedAt:   now.AddDate(0, -8, 0),
			LastLoginAt: now,
		},
	}

	slugs := make(map[string]bool, orgCount)
	for i := range orgCount {
		name := orgPrefix[i%len(orgPrefix)] + " " + orgSuffix[(i/len(orgPrefix)+i)%len(orgSuffix)]
		slug := organizations.Slugify(name)
		for n := 2; slugs[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", organizations.Slugify(name), n)
		}
		slugs[slug] = true

		plan := storage.Plans()[rng.IntN(len(storage.Plans()))]
		status := pickOrganizationStatus(rng)
		seats := 1 + rng.IntN(50)
		revenue := seatPrice[plan] * int64(seats)
		if status != storage.OrganizationActive {
			revenue = 0
		}
		data.organizations = append(data.organizations, storage.Organization{
			ID:                  stableID("organization", slug),
			Name:                name,
			Slug:                slug,
			Plan:                plan,
			Status:              status,
			Seats:               seats,
			MonthlyRevenueCents: revenue,
			Country:             countries[rng.IntN(len(countries))],
			CreatedAt:           randomTime(rng, now, 240),
		})
	}

	for i := range userCount {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		email := fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(strings.ReplaceAll(last, "-", "")), i+1)
		user := storage.User{
			ID:        stableID("user", email),
			Name:      first + " " + last,
			Email:     email,
			Role:      pickRole(rng),
			Status:    pickUserStatus(rng),
			CreatedAt: randomTime(rng, now, 180),
		}
		if len(data.organizations) > 0 && rng.IntN(5) > 0 {
			user.OrganizationID = data.organizations[rng.IntN(len(data.organizations))].ID
		}
		if user.Status == storage.UserActive {
			since := now.Sub(user.CreatedAt)
			user.LastLoginAt = user.CreatedAt.Add(time.Duration(rng.Int64N(int64(since) + 1))).Truncate(time.Second)
		}
		data.users = append(data.users, user)
	}
	return data
}

func stableID(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}

// randomTime returns an instant within the last days days.
func randomTime(rng *rand.Rand, now time.Time, days int) time.Time {
	offset := time.Duration(rng.Int64N(int64(days) * int64(24*time.Hour)))
	return now.Add(-offset).Truncate(time.Second)
}

func pickRole(rng *rand.Rand) storage.Role {
	switch n := rng.IntN(20); {
	case n == 0:
		return storage.RoleAdmin
	case n < 5:
		return storage.RoleManager
	default:
		return storage.RoleMember
	}
}

func pickUserStatus(rng *rand.Rand) storage.UserStatus {
	switch n := rng.IntN(10); {
	case n < 7:
		return storage.UserActive
	case n < 9:
		return storage.UserInvited
	default:
		return storage.UserSuspended
	}
}

func pickOrganizationStatus(rng *rand.Rand) storage.OrganizationStatus {
	switch n := rng.IntN(10); {
	case n < 6:
		return storage.OrganizationActive
	case n < 8:
		return storage.OrganizationTrial
	default:
		return storage.OrganizationChurned
	}
}
