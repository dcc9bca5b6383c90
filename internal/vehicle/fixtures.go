// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

// SampleVehicles returns the listings the development server is seeded with.
// The first three (Camry, Accord, RAV4) are the usual comparison trio.
func SampleVehicles() []Record {
	return []Record{
		{
			ID: "veh-camry-2023", VIN: "4T1G11AK5PU123456", Year: 2023, Make: "Toyota", Model: "Camry", Trim: "SE",
			BodyStyle: "sedan", Price: 28500, Mileage: 12000, Condition: "excellent",
			Description: "One-owner Camry SE with a clean history, sport-tuned suspension and excellent fuel economy.",
			Features: []string{
				"Blind Spot Monitoring System", "Lane Departure Alert", "Adaptive Cruise Control",
				"Apple CarPlay", "Android Auto", "Bluetooth Connectivity", "Backup Camera",
				"Dual-Zone Climate Control", "Keyless Entry", "LED Headlights", "Floor Mats",
			},
			Specs: map[string]any{
				"engine_type": "2.5L 4-Cylinder", "horsepower": 203, "torque": 184, "cylinders": 4,
				"transmission": "8-Speed Automatic", "drivetrain": "FWD",
				"fuel_economy_city": 28, "fuel_economy_highway": 39, "fuel_economy_combined": 32,
				"acceleration_0_60": 7.6, "length": 192.1, "width": 72.4, "seating_capacity": 5,
				"cargo_volume": 15.1, "safety_rating": 5, "airbags": 10,
				"infotainment_screen": "9-inch touchscreen", "seat_material": "SofTex sport",
				"wheel_size": 18,
			},
			Images: []string{"https://cdn.example.com/vehicles/veh-camry-2023/front.jpg"},
		},
		{
			ID: "veh-accord-2023", VIN: "1HGCY1F30PA012345", Year: 2023, Make: "Honda", Model: "Accord", Trim: "EX",
			BodyStyle: "sedan", Price: 29800, Mileage: 9500, Condition: "excellent",
			Description: "Redesigned Accord EX with turbocharged engine, roomy cabin and Honda Sensing suite.",
			Features: []string{
				"Blind Spot Information System", "Collision Mitigation Braking", "Adaptive Cruise Control",
				"Apple CarPlay", "Android Auto", "Bluetooth Connectivity", "Heated Front Seats",
				"Power Moonroof", "Remote Start", "LED Headlights",
			},
			Specs: map[string]any{
				"engine_type": "1.5L Turbo 4-Cylinder", "horsepower": 192, "torque": 192, "cylinders": 4,
				"transmission": "CVT Automatic", "drivetrain": "FWD",
				"fuel_economy_city": 29, "fuel_economy_highway": 37, "fuel_economy_combined": 32,
				"acceleration_0_60": 7.7, "length": 195.7, "width": 73.3, "seating_capacity": 5,
				"cargo_volume": 16.7, "safety_rating": 5, "airbags": 8,
				"infotainment_screen": "7-inch touchscreen", "seat_material": "cloth",
				"wheel_size": 17,
			},
			Images: []string{"https://cdn.example.com/vehicles/veh-accord-2023/front.jpg"},
		},
		{
			ID: "veh-rav4-2022", VIN: "2T3P1RFV8NW123456", Year: 2022, Make: "Toyota", Model: "RAV4", Trim: "XLE",
			BodyStyle: "suv", Price: 31200, Mileage: 24000, Condition: "good",
			Description: "RAV4 XLE with all-wheel drive, generous cargo space and Toyota Safety Sense 2.0.",
			Features: []string{
				"All-Wheel Drive", "Blind Spot Monitoring System", "Lane Tracing Assist",
				"Apple CarPlay", "Bluetooth Connectivity", "Power Liftgate", "Roof Rails",
				"Heated Front Seats", "Floor Mats",
			},
			Specs: map[string]any{
				"engine_type": "2.5L 4-Cylinder", "horsepower": 203, "torque": 184, "cylinders": 4,
				"transmission": "8-Speed Automatic", "drivetrain": "AWD",
				"fuel_economy_city": 27, "fuel_economy_highway": 35, "fuel_economy_combined": 30,
				"acceleration_0_60": 8.0, "length": 180.9, "width": 73.0, "seating_capacity": 5,
				"cargo_volume": 37.6, "towing_capacity": 1500, "safety_rating": 5, "airbags": 8,
				"infotainment_screen": "8-inch touchscreen", "seat_material": "cloth",
				"wheel_size": 18,
			},
			Images: []string{"https://cdn.example.com/vehicles/veh-rav4-2022/front.jpg"},
		},
		{
			ID: "veh-crv-2022", Year: 2022, Make: "Honda", Model: "CR-V", Trim: "EX-L",
			BodyStyle: "suv", Price: 30500, Mileage: 21000, Condition: "very good",
			Description: "CR-V EX-L with leather interior, all-wheel drive and a spacious rear seat.",
			Features: []string{
				"All-Wheel Drive", "Leather Seats", "Heated Front Seats", "Power Liftgate",
				"Apple CarPlay", "Bluetooth Connectivity", "Collision Mitigation Braking",
			},
			Specs: map[string]any{
				"engine_type": "1.5L Turbo 4-Cylinder", "horsepower": 190, "torque": 179,
				"transmission": "CVT Automatic", "drivetrain": "AWD",
				"fuel_economy_combined": 29, "length": 182.1, "seating_capacity": 5,
				"cargo_volume": 39.2, "safety_rating": 5, "airbags": 8, "seat_material": "leather",
			},
		},
		{
			ID: "veh-civic-2024", Year: 2024, Make: "Honda", Model: "Civic", Trim: "Sport",
			BodyStyle: "sedan", Price: 25400, Mileage: 3000, Condition: "excellent",
			Description: "Nearly new Civic Sport with sporty styling and excellent fuel economy.",
			Features: []string{
				"Collision Mitigation Braking", "Lane Keeping Assist", "Apple CarPlay",
				"Bluetooth Connectivity", "Alloy Wheels", "Sport Pedals",
			},
			Specs: map[string]any{
				"engine_type": "2.0L 4-Cylinder", "horsepower": 158, "torque": 138,
				"transmission": "CVT Automatic", "drivetrain": "FWD",
				"fuel_economy_combined": 33, "length": 184.0, "seating_capacity": 5,
				"safety_rating": 5, "airbags": 10,
			},
		},
		{
			ID: "veh-model3-2023", Year: 2023, Make: "Tesla", Model: "Model 3", Trim: "Long Range",
			BodyStyle: "sedan", Price: 38900, Mileage: 15000, Condition: "excellent",
			Description: "Long Range dual-motor Model 3 with Autopilot and premium interior.",
			Features: []string{
				"All-Wheel Drive", "Autopilot", "Navigation System", "Premium Audio",
				"Heated Front Seats", "Glass Roof", "Wireless Charging",
			},
			Specs: map[string]any{
				"engine_type": "Dual Motor Electric", "horsepower": 425, "torque": 375,
				"drivetrain": "AWD", "acceleration_0_60": 4.2, "top_speed": 145,
				"length": 184.8, "seating_capacity": 5, "cargo_volume": 22.9,
				"safety_rating": 5, "airbags": 8, "infotainment_screen": "15-inch touchscreen",
			},
		},
		{
			ID: "veh-f150-2021", Year: 2021, Make: "Ford", Model: "F-150", Trim: "XLT",
			BodyStyle: "truck", Price: 36700, Mileage: 41000, Condition: "good",
			Description: "F-150 XLT SuperCrew with 4x4, towing package and bed liner.",
			Features: []string{
				"4WD", "Trailer Tow Package", "Backup Camera", "Bluetooth Connectivity",
				"Remote Start", "Bed Liner",
			},
			Specs: map[string]any{
				"engine_type": "2.7L EcoBoost V6", "horsepower": 325, "torque": 400,
				"transmission": "10-Speed Automatic", "drivetrain": "4WD",
				"fuel_economy_combined": 21, "length": 231.7, "seating_capacity": 6,
				"towing_capacity": 10100, "safety_rating": 4, "airbags": 6,
			},
		},
		{
			ID: "veh-outback-2021", Year: 2021, Make: "Subaru", Model: "Outback", Trim: "Premium",
			BodyStyle: "wagon", Price: 24900, Mileage: 38000, Condition: "very good",
			Description: "Outback Premium with symmetrical all-wheel drive and EyeSight driver assist.",
			Features: []string{
				"All-Wheel Drive", "Adaptive Cruise Control", "Lane Keeping Assist",
				"Apple CarPlay", "Heated Front Seats", "Roof Rails",
			},
			Specs: map[string]any{
				"engine_type": "2.5L Boxer 4-Cylinder", "horsepower": 182, "torque": 176,
				"transmission": "CVT Automatic", "drivetrain": "AWD",
				"fuel_economy_combined": 29, "length": 191.3, "seating_capacity": 5,
				"cargo_volume": 32.5, "safety_rating": 5, "airbags": 8,
			},
		},
		{
			ID: "veh-cx5-2022", Year: 2022, Make: "Mazda", Model: "CX-5", Trim: "Touring",
			BodyStyle: "suv", Price: 26800, Mileage: 27000, Condition: "good",
			Description: "CX-5 Touring with i-Activ AWD and a refined, quiet cabin.",
			Features: []string{
				"All-Wheel Drive", "Blind Spot Monitoring System", "Apple CarPlay",
				"Leather Seats", "Power Liftgate",
			},
			Specs: map[string]any{
				"engine_type": "2.5L 4-Cylinder", "horsepower": 187, "torque": 186,
				"transmission": "6-Speed Automatic", "drivetrain": "AWD",
				"fuel_economy_combined": 28, "length": 180.1, "seating_capacity": 5,
				"cargo_volume": 30.9, "safety_rating": 5, "seat_material": "leather",
			},
		},
		{
			ID: "veh-bmw330i-2022", Year: 2022, Make: "BMW", Model: "3 Series", Trim: "330i",
			BodyStyle: "sedan", Price: 39500, Mileage: 18000, Condition: "very good",
			Description: "330i with sport package, premium audio and navigation.",
			Features: []string{
				"Navigation System", "Premium Audio", "Leather Seats", "Heated Front Seats",
				"Sunroof", "Parking Sensors",
			},
			Specs: map[string]any{
				"engine_type": "2.0L Turbo 4-Cylinder", "horsepower": 255, "torque": 295,
				"transmission": "8-Speed Automatic", "drivetrain": "RWD",
				"fuel_economy_combined": 30, "acceleration_0_60": 5.6, "length": 185.7,
				"seating_capacity": 5, "safety_rating": 5, "seat_material": "leather",
			},
		},
		{
			ID: "veh-elantra-2020", Year: 2020, Make: "Hyundai", Model: "Elantra", Trim: "SEL",
			BodyStyle: "sedan", Price: 15900, Mileage: 52000, Condition: "fair",
			Description: "Affordable Elantra SEL, well maintained, great commuter car.",
			Features: []string{"Bluetooth Connectivity", "Backup Camera", "Floor Mats"},
			Specs: map[string]any{
				"engine_type": "2.0L 4-Cylinder", "horsepower": 147, "torque": 132,
				"transmission": "Automatic", "drivetrain": "FWD",
				"fuel_economy_combined": 35, "length": 181.9, "seating_capacity": 5,
				"safety_rating": 4,
			},
		},
		{
			ID: "veh-tacoma-2020", Year: 2020, Make: "Toyota", Model: "Tacoma", Trim: "TRD Off-Road",
			BodyStyle: "truck", Price: 33400, Mileage: 46000, Condition: "good",
			Description: "Tacoma TRD Off-Road with 4x4, crawl control and locking rear differential.",
			Features: []string{"4WD", "Backup Camera", "Trailer Tow Package", "Bluetooth Connectivity"},
			Specs: map[string]any{
				"engine_type": "3.5L V6", "horsepower": 278, "torque": 265,
				"transmission": "6-Speed Automatic", "drivetrain": "4WD",
				"fuel_economy_combined": 19, "length": 212.3, "seating_capacity": 5,
				"towing_capacity": 6400, "safety_rating": 4,
			},
		},
	}
}
