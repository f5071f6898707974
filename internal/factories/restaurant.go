package factories

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"github.com/chrisdamba/fooddash/internal/models"
)

var cuisines = []string{"Italian", "Indian", "American", "Japanese", "Mexican", "Chinese", "Thai", "Greek", "French", "Mediterranean", "Pizza", "Burgers", "Bowl", "Biryani", "Chicken"}

var nonVegCuisines = map[string]bool{"Biryani": true, "Chicken": true, "Burgers": true}

var offers = []string{"", "50% OFF", "Flat 20% OFF", "Buy 1 Get 1", "Free delivery above $15", "Flat $10 OFF"}

// RestaurantFactory generates restaurants beyond the static catalog.
type RestaurantFactory struct {
	fake      faker.Faker
	rand      *rand.Rand
	slugCache sync.Map // to track used names
}

func NewRestaurantFactory(seed int64) *RestaurantFactory {
	return &RestaurantFactory{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (rf *RestaurantFactory) CreateRestaurant() *models.Restaurant {
	tags := rf.randomCuisines()
	isVeg := true
	for _, tag := range tags {
		if nonVegCuisines[tag] {
			isVeg = false
		}
	}
	minTime := rf.fake.IntBetween(10, 40)
	name := rf.uniqueName(rf.fake.Company().Name())

	return &models.Restaurant{
		ID:           cuid.New(),
		Name:         name,
		Rating:       rf.fake.Float64(1, 30, 49) / 10,
		RatingCount:  fmt.Sprintf("%d+", rf.fake.IntBetween(1, 9)*100),
		DeliveryTime: fmt.Sprintf("%d-%d mins", minTime, minTime+5),
		Distance:     fmt.Sprintf("%.1f mi", rf.fake.Float64(1, 3, 50)/10),
		Offer:        offers[rf.rand.Intn(len(offers))],
		OfferCount:   rf.fake.IntBetween(1, 5),
		Address:      fmt.Sprintf("%s, %s", rf.fake.Address().StreetAddress(), rf.fake.Address().City()),
		Tags:         tags,
		Highlights:   []string{"Newly listed"},
		Images:       []string{rf.fake.Internet().URL()},
		Promoted:     rf.rand.Intn(10) == 0,
		IsVeg:        isVeg,
		MenuSections: append([]string(nil), menuSections...),
	}
}

// uniqueName suffixes repeated faker company names so the feed stays readable.
func (rf *RestaurantFactory) uniqueName(name string) string {
	base := strings.TrimSpace(name)
	candidate := base
	counter := 1
	for {
		if _, exists := rf.slugCache.LoadOrStore(strings.ToLower(candidate), true); !exists {
			return candidate
		}
		counter++
		candidate = fmt.Sprintf("%s %d", base, counter)
	}
}

func (rf *RestaurantFactory) randomCuisines() []string {
	count := rf.rand.Intn(3) + 1 // 1 to 3 cuisines
	seen := make(map[string]bool, count)
	result := make([]string, 0, count)
	for len(result) < count {
		c := cuisines[rf.rand.Intn(len(cuisines))]
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}
