package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sevacare/caregiver-match/internal/adapters/database"
	"github.com/sevacare/caregiver-match/internal/domain/entities"
	"github.com/sevacare/caregiver-match/internal/infrastructure/clients/postgres"
	"github.com/sevacare/caregiver-match/pkg/config"
)

func floatPtr(v float64) *float64 { return &v }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	caregiverRepo := database.NewCaregiverAdapter(pgClient)
	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				match_analytics,
				caregivers
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	now := time.Now()
	caregivers := []entities.Caregiver{
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Asha Verma",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Cardiology", "General Medicine"},
			Bio:             "Consultant cardiologist treating chest pain, hypertension and heart disease.",
			BioHindi:        "हृदय रोग विशेषज्ञ, सीने में दर्द और उच्च रक्तचाप का इलाज।",
			ExperienceYears: 14,
			Rating:          4.8,
			TotalReviews:    212,
			Location:        &entities.Location{Latitude: 28.6139, Longitude: 77.2090},
			ConsultationFee: floatPtr(800),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Rohan Iyer",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Neurology"},
			Bio:             "Neurologist managing stroke recovery, epilepsy and chronic migraine.",
			BioHindi:        "न्यूरोलॉजिस्ट, लकवा और मिर्गी के मरीजों का इलाज।",
			ExperienceYears: 11,
			Rating:          4.6,
			TotalReviews:    148,
			Location:        &entities.Location{Latitude: 28.5355, Longitude: 77.3910},
			ConsultationFee: floatPtr(1000),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Meera Krishnan",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Gynecology", "Maternal Care"},
			Bio:             "Obstetrician providing antenatal care, delivery support and postnatal checkups.",
			BioHindi:        "स्त्री रोग विशेषज्ञ, गर्भावस्था और प्रसव देखभाल।",
			ExperienceYears: 9,
			Rating:          4.7,
			TotalReviews:    176,
			Location:        &entities.Location{Latitude: 28.7041, Longitude: 77.1025},
			ConsultationFee: floatPtr(700),
			HomeVisitFee:    floatPtr(1200),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Kabir Shah",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Pediatrics"},
			Bio:             "Pediatrician caring for infants and children, fever and vaccination guidance.",
			BioHindi:        "बाल रोग विशेषज्ञ, बच्चों के बुखार और टीकाकरण की सलाह।",
			ExperienceYears: 7,
			Rating:          4.5,
			TotalReviews:    98,
			Location:        &entities.Location{Latitude: 28.4595, Longitude: 77.0266},
			ConsultationFee: floatPtr(600),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Nurse Leela Nair",
			ProviderType:    entities.ProviderTypeNurse,
			Specializations: []string{"Elder Care", "General Medicine"},
			Bio:             "Home nursing for elderly and bedridden patients, wound dressing and injections.",
			BioHindi:        "बुजुर्गों की घरेलू देखभाल, पट्टी और इंजेक्शन।",
			ExperienceYears: 12,
			Rating:          4.9,
			TotalReviews:    260,
			Location:        &entities.Location{Latitude: 28.6304, Longitude: 77.2177},
			HomeVisitFee:    floatPtr(500),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Ravi Patel",
			ProviderType:    entities.ProviderTypeTherapist,
			Specializations: []string{"Physiotherapy", "Orthopedics"},
			Bio:             "Physiotherapist for back pain, joint pain and post-fracture rehabilitation.",
			BioHindi:        "फिजियोथेरेपिस्ट, कमर दर्द और जोड़ों के दर्द का इलाज।",
			ExperienceYears: 8,
			Rating:          4.4,
			TotalReviews:    134,
			Location:        &entities.Location{Latitude: 28.5672, Longitude: 77.3211},
			HomeVisitFee:    floatPtr(700),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Sana Qureshi",
			ProviderType:    entities.ProviderTypeTherapist,
			Specializations: []string{"Mental Health"},
			Bio:             "Counsellor for anxiety, depression and stress management, online sessions available.",
			BioHindi:        "तनाव, चिंता और अवसाद के लिए परामर्श।",
			ExperienceYears: 6,
			Rating:          4.6,
			TotalReviews:    87,
			ConsultationFee: floatPtr(900),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Sunita Devi",
			ProviderType:    entities.ProviderTypeCommunityWorker,
			Specializations: []string{"Community Health"},
			Bio:             "ASHA worker running vaccination drives and maternal health checkup camps.",
			BioHindi:        "आशा कार्यकर्ता, टीकाकरण और मातृ स्वास्थ्य शिविर।",
			ExperienceYears: 10,
			Rating:          4.3,
			TotalReviews:    45,
			Location:        &entities.Location{Latitude: 28.4089, Longitude: 77.3178},
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Vikram Rao",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Diabetes Care", "General Medicine"},
			Bio:             "Physician managing diabetes, blood sugar monitoring and insulin therapy.",
			BioHindi:        "मधुमेह और शुगर के मरीजों का इलाज।",
			ExperienceYears: 16,
			Rating:          4.7,
			TotalReviews:    190,
			Location:        &entities.Location{Latitude: 28.6692, Longitude: 77.4538},
			ConsultationFee: floatPtr(750),
			IsVerified:      true,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		// Unverified and inactive records exercise the eligibility filter.
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Dr. Pending Review",
			ProviderType:    entities.ProviderTypeDoctor,
			Specializations: []string{"Cardiology"},
			Bio:             "Cardiologist, profile pending verification.",
			ExperienceYears: 20,
			Rating:          4.9,
			TotalReviews:    5,
			IsVerified:      false,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			UserID:          uuid.New().String(),
			DisplayName:     "Nurse Inactive",
			ProviderType:    entities.ProviderTypeNurse,
			Specializations: []string{"Elder Care"},
			Bio:             "Currently not accepting patients.",
			ExperienceYears: 5,
			Rating:          4.0,
			TotalReviews:    30,
			IsVerified:      true,
			IsActive:        false,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	for i := range caregivers {
		if err := caregiverRepo.Create(ctx, &caregivers[i]); err != nil {
			log.Printf("Failed to create caregiver %s: %v", caregivers[i].DisplayName, err)
		}
	}

	log.Printf("Seeded %d caregivers", len(caregivers))
}
