package ledger

import "oneday/models"

var membershipPlans = []models.MembershipPlan{
	{
		ID:           "basic",
		Name:         "베이직",
		Price:        9900,
		DurationDays: 30,
		Features:     []string{"나를 선택한 참가자 확인", "월 3회 무료 매칭", "기본 프로필 노출"},
	},
	{
		ID:           "premium",
		Name:         "프리미엄",
		Price:        19900,
		DurationDays: 30,
		Features:     []string{"나를 선택한 참가자 확인", "무제한 매칭", "우선 프로필 노출", "채팅 읽음 확인", "5,000원 쿠폰 지급"},
		Popular:      true,
	},
	{
		ID:           "vip",
		Name:         "VIP",
		Price:        39900,
		DurationDays: 30,
		Features:     []string{"프리미엄 모든 혜택", "전담 매니저 배정", "프로필 컨설팅", "매월 10,000원 쿠폰", "VIP 전용 클래스 초대"},
	},
}

// Plans returns a copy of the membership plan catalog.
func Plans() []models.MembershipPlan {
	out := make([]models.MembershipPlan, len(membershipPlans))
	copy(out, membershipPlans)
	return out
}

// Plan looks up a plan by id.
func Plan(id string) (models.MembershipPlan, bool) {
	for _, p := range membershipPlans {
		if p.ID == id {
			return p, true
		}
	}
	return models.MembershipPlan{}, false
}
