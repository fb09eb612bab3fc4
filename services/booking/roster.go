package booking

import "oneday/models"

// rosterFor returns the fixed attendee list attached when a class completes.
// The first attendee has always picked the user.
func rosterFor(t models.ClassType) []models.Participant {
	minji := models.Participant{ID: 1, Name: "민지", Photo: "👩", Intro: "반가워요!", SelectedMe: true}
	if t != models.ClassTypeGroup {
		return []models.Participant{minji}
	}
	return []models.Participant{
		minji,
		{ID: 2, Name: "서준", Photo: "👨", Intro: "다음에 또 만나요~", SelectedMe: false},
		{ID: 3, Name: "하은", Photo: "👩", Intro: "좋은 시간이었어요!", SelectedMe: false},
	}
}
