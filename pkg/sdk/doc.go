// Package heartcheck runs the heart disease classifier in-process.
//
// It loads the same artifact bundle as the heartcheck server, applies the
// same validation and preprocessing, and returns the predicted class with
// the probability of heart disease.
//
//	client, err := heartcheck.New(ctx, heartcheck.WithArtifact("artifacts/heart_model.yaml"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	p, err := client.Predict(ctx, heartcheck.Input{
//	    Age: 63, Sex: "Male", ChestPainType: "Type 1",
//	    RestingBloodPressure: 145, Cholesterol: 233, FastingBloodSugar: "True",
//	    RestingECG: "Normal", MaxHeartRate: 150, ExerciseAngina: "No",
//	    STDepression: 2.3, STSlope: "Downsloping", MajorVessels: 0,
//	    Thalassemia: "Fixed Defect",
//	})
//	fmt.Println(p.Label, p.ProbabilityText)
//
// Prediction counts can be persisted to Valkey or Redis with WithValkey or
// WithRedis; without them counts live in memory.
package heartcheck
