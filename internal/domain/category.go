package domain

// Category is a static catalog entry; the catalog is code, not data.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var Categories = []Category{
	// Vehicles & Transport
	{ID: "cars", Name: "Cars", Icon: "car"},
	{ID: "motorcycles", Name: "Motorcycles & Scooters", Icon: "bike"},
	{ID: "bikes", Name: "Bikes & E-Bikes", Icon: "bicycle"},
	{ID: "boats", Name: "Boats & Watercraft", Icon: "ship"},
	{ID: "caravans", Name: "Caravans & RVs", Icon: "caravan"},
	// Heavy Equipment
	{ID: "heavy-machinery", Name: "Heavy Machinery", Icon: "tractor"},
	{ID: "construction", Name: "Construction Equipment", Icon: "hard-hat"},
	{ID: "farming", Name: "Farming Equipment", Icon: "wheat"},
	// Services & Labor
	{ID: "tradies", Name: "Tradies & Handymen", Icon: "hammer"},
	{ID: "manpower", Name: "Labor & Helpers", Icon: "users"},
	{ID: "drivers", Name: "Drivers & Delivery", Icon: "truck"},
	// Home & Living
	{ID: "tools", Name: "Tools & DIY", Icon: "wrench"},
	{ID: "kitchen", Name: "Kitchen & Appliances", Icon: "utensils"},
	{ID: "furniture", Name: "Furniture", Icon: "sofa"},
	{ID: "garden", Name: "Garden & Outdoor", Icon: "flower"},
	{ID: "cleaning", Name: "Cleaning Equipment", Icon: "sparkles"},
	// Events & Entertainment
	{ID: "party", Name: "Party & Events", Icon: "party-popper"},
	{ID: "audio-visual", Name: "Audio & Visual", Icon: "speaker"},
	{ID: "instruments", Name: "Musical Instruments", Icon: "music"},
	{ID: "photography", Name: "Photography & Video", Icon: "camera"},
	// Sports & Recreation
	{ID: "sports", Name: "Sports Equipment", Icon: "dumbbell"},
	{ID: "camping", Name: "Camping & Hiking", Icon: "tent"},
	{ID: "water-sports", Name: "Water Sports", Icon: "waves"},
	{ID: "winter-sports", Name: "Winter Sports", Icon: "snowflake"},
	// Tech & Electronics
	{ID: "electronics", Name: "Electronics & Gadgets", Icon: "laptop"},
	{ID: "gaming", Name: "Gaming", Icon: "gamepad"},
	{ID: "drones", Name: "Drones", Icon: "plane"},
	// Fashion & Accessories
	{ID: "fashion", Name: "Fashion & Costumes", Icon: "shirt"},
	{ID: "jewelry", Name: "Jewelry & Watches", Icon: "gem"},
	{ID: "bags", Name: "Bags & Luggage", Icon: "briefcase"},
	// Kids & Pets
	{ID: "baby", Name: "Baby & Kids", Icon: "baby"},
	{ID: "pets", Name: "Pet Equipment", Icon: "paw-print"},
	// Other
	{ID: "storage", Name: "Storage Space", Icon: "warehouse"},
	{ID: "other", Name: "Other", Icon: "package"},
}

// ValidCategory reports whether id names a catalog category.
func ValidCategory(id string) bool {
	for _, c := range Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
