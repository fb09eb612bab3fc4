package catalog

import "oneday/models"

var demoClasses = []models.ClassListing{
	{
		ID:          "class1",
		Title:       "한남동 핸드드립 커피",
		Subtitle:    "원두 향기와 함께하는 오후",
		Description: "직접 원두를 선택하고 핸드드립으로 나만의 커피를 만들어보세요. 바리스타가 1:1로 가이드해 드립니다.",
		Category:    "커피",
		Type:        models.ClassTypeGroup,
		Location:    "서울 용산구",
		Image:       "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=400",
		Rating:      4.8,
		ReviewCount: 24,
		BasePrice:   32000,
		PlatformFee: 3000,
		TotalPrice:  35000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-03", Time: "14:00", MaxCapacity: 4, CurrentEnrollment: 3},
			{ID: "s2", Date: "2025-02-05", Time: "15:00", MaxCapacity: 4, CurrentEnrollment: 1},
			{ID: "s3", Date: "2025-02-08", Time: "14:00", MaxCapacity: 4, CurrentEnrollment: 4},
		},
		Reviews: []models.ListingReview{
			{ID: "r1", UserName: "커피러버", Rating: 5, Content: "정말 좋은 경험이었어요!", Date: "2025-01-28"},
			{ID: "r2", UserName: "오후의여유", Rating: 4, Content: "분위기도 좋고 커피도 맛있었어요", Date: "2025-01-25"},
		},
	},
	{
		ID:          "class2",
		Title:       "성수동 도자기 클래스",
		Subtitle:    "흙과 함께하는 힐링 시간",
		Description: "물레를 돌려 나만의 도자기를 만들어보세요. 초보자도 쉽게 따라할 수 있습니다.",
		Category:    "공예",
		Type:        models.ClassTypeOneOnOne,
		Location:    "서울 성동구",
		Image:       "https://images.unsplash.com/photo-1565193566173-7a0ee3dbe261?w=400",
		Rating:      4.9,
		ReviewCount: 18,
		BasePrice:   55000,
		PlatformFee: 5000,
		TotalPrice:  60000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-04", Time: "11:00", MaxCapacity: 1, CurrentEnrollment: 0},
			{ID: "s2", Date: "2025-02-06", Time: "14:00", MaxCapacity: 1, CurrentEnrollment: 1},
		},
		Reviews: []models.ListingReview{
			{ID: "r1", UserName: "도예가꿈나무", Rating: 5, Content: "선생님이 정말 잘 가르쳐주세요!", Date: "2025-01-20"},
		},
	},
	{
		ID:          "class3",
		Title:       "망원동 와인 테이스팅",
		Subtitle:    "소믈리에와 함께하는 와인 여행",
		Description: "5종의 와인을 테이스팅하며 와인의 기초를 배워보세요.",
		Category:    "와인",
		Type:        models.ClassTypeGroup,
		Location:    "서울 마포구",
		Image:       "https://images.unsplash.com/photo-1510812431401-41d2bd2722f3?w=400",
		Rating:      4.7,
		ReviewCount: 32,
		BasePrice:   45000,
		PlatformFee: 5000,
		TotalPrice:  50000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-07", Time: "19:00", MaxCapacity: 4, CurrentEnrollment: 2},
			{ID: "s2", Date: "2025-02-14", Time: "19:00", MaxCapacity: 4, CurrentEnrollment: 0},
		},
		Reviews: []models.ListingReview{
			{ID: "r1", UserName: "와인입문자", Rating: 5, Content: "와인에 대해 많이 배웠어요", Date: "2025-01-22"},
		},
	},
	{
		ID:          "class4",
		Title:       "연남동 수채화 드로잉",
		Subtitle:    "감성 가득 그림 그리기",
		Description: "기초부터 배우는 수채화 클래스. 오늘의 풍경을 그려보세요.",
		Category:    "그림",
		Type:        models.ClassTypeGroup,
		Location:    "서울 마포구",
		Image:       "https://images.unsplash.com/photo-1460661419201-fd4cecdf8a8b?w=400",
		Rating:      4.6,
		ReviewCount: 15,
		BasePrice:   38000,
		PlatformFee: 4000,
		TotalPrice:  42000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-09", Time: "13:00", MaxCapacity: 4, CurrentEnrollment: 1},
		},
		Reviews: []models.ListingReview{},
	},
	{
		ID:          "class5",
		Title:       "이태원 쿠킹 클래스",
		Subtitle:    "셰프에게 배우는 파스타",
		Description: "정통 이탈리안 파스타를 직접 만들어보세요.",
		Category:    "요리",
		Type:        models.ClassTypeGroup,
		Location:    "서울 용산구",
		Image:       "https://images.unsplash.com/photo-1556910103-1c02745aae4d?w=400",
		Rating:      4.8,
		ReviewCount: 28,
		BasePrice:   52000,
		PlatformFee: 5000,
		TotalPrice:  57000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-10", Time: "18:00", MaxCapacity: 4, CurrentEnrollment: 3},
			{ID: "s2", Date: "2025-02-15", Time: "12:00", MaxCapacity: 4, CurrentEnrollment: 0},
		},
		Reviews: []models.ListingReview{
			{ID: "r1", UserName: "요리초보", Rating: 5, Content: "너무 맛있게 만들었어요!", Date: "2025-01-18"},
		},
	},
	{
		ID:          "class6",
		Title:       "북촌 전통 다도 체험",
		Subtitle:    "한옥에서 즐기는 차 한 잔",
		Description: "전통 한옥에서 다도를 배우고 마음의 평화를 찾아보세요.",
		Category:    "전통",
		Type:        models.ClassTypeOneOnOne,
		Location:    "서울 종로구",
		Image:       "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=400",
		Rating:      4.9,
		ReviewCount: 12,
		BasePrice:   40000,
		PlatformFee: 4000,
		TotalPrice:  44000,
		Schedules: []models.ScheduleSlot{
			{ID: "s1", Date: "2025-02-11", Time: "10:00", MaxCapacity: 1, CurrentEnrollment: 0},
			{ID: "s2", Date: "2025-02-12", Time: "15:00", MaxCapacity: 1, CurrentEnrollment: 0},
		},
		Reviews: []models.ListingReview{},
	},
}
