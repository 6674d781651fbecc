package domain

// ServiceCategory groups the service types offered under one heading.
type ServiceCategory struct {
	Name         string
	ServiceTypes []string
}

// ServiceCategories is the service taxonomy in display order.
var ServiceCategories = []ServiceCategory{
	{Name: "Fitness & Coaching", ServiceTypes: []string{
		"Personal Trainer", "Strength & Conditioning Coach", "Group Class Instructor", "Yoga Instructor",
		"Pilates Instructor", "CrossFit Coach", "Calisthenics Coach", "HIIT Coach", "Aerobics Instructor",
		"Spin/Cycling Instructor", "Zumba Instructor", "Boxing Coach", "Kickboxing Coach", "MMA Coach",
		"Martial Arts Instructor (Taekwondo)", "Martial Arts Instructor (Karate)", "Martial Arts Instructor (Judo)",
		"Martial Arts Instructor (BJJ)", "Running Coach", "Triathlon Coach", "Swimming Coach", "Climbing Coach",
	}},
	{Name: "Health & Wellness", ServiceTypes: []string{
		"Dietitian/Nutritionist", "Sports Nutritionist", "Physiotherapist", "Biokineticist", "Chiropractor",
		"Massage Therapist (Sports/Deep Tissue)", "Occupational Therapist", "Psychologist (Sports/Performance)",
		"Wellness Coach", "Sleep Coach", "Breathwork Coach", "Herbalist/Traditional Healer", "Naturopath", "Homeopath",
	}},
	{Name: "Medical", ServiceTypes: []string{
		"GP (Sports Focus)", "Sports Physician", "Orthopedic Specialist", "Cardiologist (Sports Screening)",
		"Podiatrist", "Dermatologist (athlete-related)", "Endocrinologist (metabolism)",
	}},
	{Name: "Team Sports", ServiceTypes: []string{
		"Soccer Club/Academy", "Rugby Club/Academy", "Cricket Club/Academy", "Basketball Club", "Netball Club",
		"Hockey Club", "Volleyball Club", "Athletics Club", "Esports Team Fitness Coaching", "Head Coach",
		"Assistant Coach", "Team Manager", "Physiotherapist (Team)", "Strength Coach (Team)", "Analyst/Scout",
	}},
	{Name: "Specialists", ServiceTypes: []string{
		"Performance Analyst", "Sport Scientist", "Biomechanist", "Referee/Umpire Trainer",
		"Life Coach (Athletes)", "Injury Prevention Specialist",
	}},
}

// ProductCategories are the categories offered by the product filter.
var ProductCategories = []string{
	"Supplements", "Fitness Equipment", "Fitness Apparel", "Accessories", "Sports Nutrition",
	"Recovery Products", "Home Gym", "Cardio Equipment", "Strength Training", "Yoga & Pilates",
}

// GymFacilities are the facilities a gym listing can advertise.
var GymFacilities = []string{
	"Swimming Pool", "Sauna", "Steam Room", "Personal Training", "Group Classes", "Cardio Equipment",
	"Free Weights", "Parking", "Locker Rooms", "Juice Bar", "24/7 Access", "Air Conditioning",
}

// Provinces lists the nine South African provinces.
var Provinces = []string{
	"Eastern Cape", "Free State", "Gauteng", "KwaZulu-Natal", "Limpopo",
	"Mpumalanga", "Northern Cape", "North West", "Western Cape",
}

// MajorCities maps each province to the cities offered by the location filter.
var MajorCities = map[string][]string{
	"Gauteng":       {"Johannesburg", "Pretoria", "Sandton", "Randburg", "Roodepoort", "Germiston", "Benoni"},
	"Western Cape":  {"Cape Town", "Stellenbosch", "Paarl", "George", "Worcester", "Hermanus"},
	"KwaZulu-Natal": {"Durban", "Pietermaritzburg", "Newcastle", "Richards Bay", "Ladysmith"},
	"Eastern Cape":  {"Port Elizabeth", "East London", "Uitenhage", "King William's Town", "Grahamstown"},
	"Free State":    {"Bloemfontein", "Welkom", "Kroonstad", "Bethlehem", "Sasolburg"},
	"Limpopo":       {"Polokwane", "Tzaneen", "Mokopane", "Thohoyandou", "Giyani"},
	"Mpumalanga":    {"Nelspruit", "Witbank", "Middelburg", "Secunda", "Standerton"},
	"Northern Cape": {"Kimberley", "Upington", "Kuruman", "De Aar", "Springbok"},
	"North West":    {"Rustenburg", "Potchefstroom", "Klerksdorp", "Mahikeng", "Brits"},
}

var (
	provinceSet    = stringSet(Provinces)
	serviceTypeSet = func() map[string]string {
		set := map[string]string{}
		for _, c := range ServiceCategories {
			for _, t := range c.ServiceTypes {
				set[t] = c.Name
			}
		}
		return set
	}()
)

// IsProvince reports whether name is one of the nine provinces, compared exactly.
func IsProvince(name string) bool {
	_, ok := provinceSet[name]
	return ok
}

// CategoryOfServiceType returns the category a service type is filed under.
func CategoryOfServiceType(serviceType string) (string, bool) {
	category, ok := serviceTypeSet[serviceType]
	return category, ok
}

// IsServiceCategory reports whether name is a top-level service category.
func IsServiceCategory(name string) bool {
	for _, c := range ServiceCategories {
		if c.Name == name {
			return true
		}
	}
	return false
}
